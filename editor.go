// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

//go:build editor

package ebimgui

// EditorContext is the context of the editor UI.
func EditorContext() ContextKey {
	return ContextKey{Kind: ContextEditor}
}

// GetEditorContextProxy returns the editor's context, creating it on first
// use.
func (m *ContextManager) GetEditorContextProxy() *ContextProxy {
	proxy, _ := m.Resolve(EditorContext())
	return proxy
}

// AddEditorDelegate subscribes fn to the editor context.
func (m *Module) AddEditorDelegate(fn DrawFunc) DelegateHandle {
	m.checkOpen("AddEditorDelegate")
	proxy := m.contexts.GetEditorContextProxy()
	return DelegateHandle{ID: proxy.OnDraw().Add(fn), Category: CategoryDefault, Index: EditorContextIndex}
}

// AddEditorDelegate subscribes fn to the editor context of the running
// module.
func AddEditorDelegate(fn DrawFunc) DelegateHandle {
	return mustModule("AddEditorDelegate").AddEditorDelegate(fn)
}
