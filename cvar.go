// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// SetBy is the priority of a console variable write. A write is accepted
// when its priority is at least the priority of the last accepted write.
type SetBy int32

const (
	SetByConstructor SetBy = iota
	SetByConfigFile
	SetByCommandline
	SetByCode
	SetByConsole
)

func (s SetBy) String() string {
	switch s {
	case SetByConstructor:
		return "constructor"
	case SetByConfigFile:
		return "config-file"
	case SetByCommandline:
		return "commandline"
	case SetByCode:
		return "code"
	case SetByConsole:
		return "console"
	}
	return "SetBy(" + strconv.Itoa(int(s)) + ")"
}

// ConsoleVariable is a process-wide integer switch. Reads are lock-free and
// may happen on any goroutine. Writes belong to the game loop goroutine.
type ConsoleVariable struct {
	name    string
	help    string
	initial int32

	value atomic.Int32
	setBy atomic.Int32
	sink  func(cv *ConsoleVariable, value int32, by SetBy)
}

// Name returns the variable's console name.
func (cv *ConsoleVariable) Name() string { return cv.name }

// Help returns the variable's description.
func (cv *ConsoleVariable) Help() string { return cv.help }

// GetValueOnAnyThread returns the current value. Safe on any goroutine.
func (cv *ConsoleVariable) GetValueOnAnyThread() int32 {
	return cv.value.Load()
}

// Enabled reports whether the value is non-zero.
func (cv *ConsoleVariable) Enabled() bool {
	return cv.GetValueOnAnyThread() != 0
}

// SetBy returns the priority of the last accepted write.
func (cv *ConsoleVariable) SetBy() SetBy {
	return SetBy(cv.setBy.Load())
}

// Set writes value with priority by. It returns false and leaves the value
// alone when by is lower than the priority of the last accepted write.
func (cv *ConsoleVariable) Set(value int32, by SetBy) bool {
	if by < cv.SetBy() {
		if cv.sink != nil {
			cv.sink(cv, value, by)
		}
		return false
	}
	cv.setBy.Store(int32(by))
	cv.value.Store(value)
	return true
}

// reset restores the constructor value and priority.
func (cv *ConsoleVariable) reset() {
	cv.setBy.Store(int32(SetByConstructor))
	cv.value.Store(cv.initial)
}

// ConsoleCommand is a named action runnable from the console.
type ConsoleCommand struct {
	Name string
	Help string
	Run  func(args []string) error
}

// ConsoleManager holds console variables and commands.
type ConsoleManager struct {
	mu        sync.RWMutex
	variables map[string]*ConsoleVariable
	commands  map[string]*ConsoleCommand
	log       atomic.Pointer[zap.Logger]
}

// NewConsoleManager creates an empty manager.
func NewConsoleManager() *ConsoleManager {
	cm := &ConsoleManager{
		variables: make(map[string]*ConsoleVariable),
		commands:  make(map[string]*ConsoleCommand),
	}
	cm.log.Store(zap.NewNop())
	return cm
}

// SetLogger sets the logger used for rejected writes and command output.
func (cm *ConsoleManager) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	cm.log.Store(log)
}

func (cm *ConsoleManager) logger() *zap.Logger {
	return cm.log.Load()
}

// RegisterVariable adds an integer variable. Registering a name twice is a
// programming error.
func (cm *ConsoleManager) RegisterVariable(name string, initial int32, help string) *ConsoleVariable {
	key := consoleKey(name)
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if _, ok := cm.variables[key]; ok {
		panic(fmt.Sprintf("ebimgui: console variable %q registered twice", name))
	}
	cv := &ConsoleVariable{name: name, help: help, initial: initial}
	cv.value.Store(initial)
	cv.sink = func(cv *ConsoleVariable, value int32, by SetBy) {
		cm.logger().Warn("console variable write rejected by priority",
			zap.String("variable", cv.name),
			zap.Int32("value", value),
			zap.Stringer("set_by", by),
			zap.Stringer("current_set_by", cv.SetBy()))
	}
	cm.variables[key] = cv
	return cv
}

// RegisterCommand adds a command. Registering a name twice is a programming
// error.
func (cm *ConsoleManager) RegisterCommand(name, help string, run func(args []string) error) *ConsoleCommand {
	key := consoleKey(name)
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if _, ok := cm.commands[key]; ok {
		panic(fmt.Sprintf("ebimgui: console command %q registered twice", name))
	}
	cmd := &ConsoleCommand{Name: name, Help: help, Run: run}
	cm.commands[key] = cmd
	return cmd
}

// FindVariable looks up a variable by name (case-insensitive).
func (cm *ConsoleManager) FindVariable(name string) *ConsoleVariable {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.variables[consoleKey(name)]
}

// FindCommand looks up a command by name (case-insensitive).
func (cm *ConsoleManager) FindCommand(name string) *ConsoleCommand {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.commands[consoleKey(name)]
}

// Names returns every registered variable and command name, sorted.
func (cm *ConsoleManager) Names() []string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	names := make([]string, 0, len(cm.variables)+len(cm.commands))
	for _, cv := range cm.variables {
		names = append(names, cv.name)
	}
	for _, cmd := range cm.commands {
		names = append(names, cmd.Name)
	}
	sort.Strings(names)
	return names
}

// Exec runs one console line:
//
//	ImGui.SwitchInputMode     runs a command
//	ImGui.InputEnabled        returns the variable's value
//	ImGui.InputEnabled 1      sets the variable with SetByConsole priority
//
// The returned string is the line's output, if any.
func (cm *ConsoleManager) Exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	name, args := fields[0], fields[1:]

	if cmd := cm.FindCommand(name); cmd != nil {
		if err := cmd.Run(args); err != nil {
			return "", fmt.Errorf("%s: %w", cmd.Name, err)
		}
		return "", nil
	}

	cv := cm.FindVariable(name)
	if cv == nil {
		return "", fmt.Errorf("unknown console command or variable %q", name)
	}
	if len(args) == 0 {
		return fmt.Sprintf("%s = %d (set by %s)", cv.name, cv.GetValueOnAnyThread(), cv.SetBy()), nil
	}
	value, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return "", fmt.Errorf("%s: bad value %q: %w", cv.name, args[0], err)
	}
	if !cv.Set(int32(value), SetByConsole) {
		return "", fmt.Errorf("%s: write rejected, set by %s", cv.name, cv.SetBy())
	}
	cm.logger().Info("console variable set", zap.String("variable", cv.name), zap.Int64("value", value))
	return fmt.Sprintf("%s = %d", cv.name, value), nil
}

// Apply writes every known variable in values with priority by and returns
// the names it did not recognise.
func (cm *ConsoleManager) Apply(values map[string]int, by SetBy) (unknown []string) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cv := cm.FindVariable(name)
		if cv == nil {
			unknown = append(unknown, name)
			continue
		}
		cv.Set(int32(values[name]), by)
	}
	return unknown
}

func consoleKey(name string) string {
	return strings.ToLower(name)
}
