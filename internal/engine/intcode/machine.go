// Package intcode runs Intcode programs and adapts the arcade cabinet
// program to the engine interface.
package intcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxMemory bounds memory growth so a runaway address faults instead of
// exhausting the host.
const maxMemory = 1 << 22

// DefaultBudget caps the instructions Run executes between input waits, so a
// program spinning without asking for input faults instead of hanging.
const DefaultBudget = 10_000_000

// ErrBudgetExceeded is wrapped by the FaultError of a machine that ran past
// its instruction budget.
var ErrBudgetExceeded = errors.New("intcode: instruction budget exceeded")

// Opcodes.
const (
	opAdd       = 1
	opMul       = 2
	opInput     = 3
	opOutput    = 4
	opJumpTrue  = 5
	opJumpFalse = 6
	opLess      = 7
	opEquals    = 8
	opRelBase   = 9
	opHalt      = 99
)

// Parameter modes.
const (
	modePosition  = 0
	modeImmediate = 1
	modeRelative  = 2
)

// Event is the reason Run stopped.
type Event int

const (
	EventInput  Event = iota // Waiting for an input value
	EventOutput              // Produced one output value
	EventHalt                // Executed opcode 99
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventInput:
		return "input"
	case EventOutput:
		return "output"
	case EventHalt:
		return "halt"
	default:
		return "unknown"
	}
}

// FaultError describes an instruction the machine could not execute.
type FaultError struct {
	IP     int64 // Instruction pointer of the faulting instruction
	Opcode int64 // Full instruction value, modes included
	Reason string
	Err    error // Underlying cause, if any
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("intcode: fault at %d (instruction %d): %s", e.IP, e.Opcode, e.Reason)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// Machine is an Intcode computer. It is not safe for concurrent use.
type Machine struct {
	mem     []int64
	ip      int64
	base    int64
	input   []int64
	halted  bool
	lastErr error
	budget  int64 // instructions allowed between input waits
	spent   int64
}

// NewMachine returns a machine loaded with a copy of program.
func NewMachine(program []int64) *Machine {
	mem := make([]int64, len(program))
	copy(mem, program)
	return &Machine{mem: mem, budget: DefaultBudget}
}

// SetBudget sets how many instructions Run may execute before the machine
// next waits for input. Zero or less restores DefaultBudget.
func (m *Machine) SetBudget(n int64) {
	if n <= 0 {
		n = DefaultBudget
	}
	m.budget = n
}

// Input queues a value for the next input instruction.
func (m *Machine) Input(v int64) {
	m.input = append(m.input, v)
}

// Halted reports whether the machine has executed opcode 99.
func (m *Machine) Halted() bool {
	return m.halted
}

// Peek returns the value at addr. Unwritten memory reads as 0.
func (m *Machine) Peek(addr int64) (int64, error) {
	if addr < 0 {
		return 0, fmt.Errorf("intcode: negative address %d", addr)
	}
	if addr >= int64(len(m.mem)) {
		return 0, nil
	}
	return m.mem[addr], nil
}

// Poke writes v at addr, growing memory as needed.
func (m *Machine) Poke(addr, v int64) error {
	if err := m.grow(addr); err != nil {
		return err
	}
	m.mem[addr] = v
	return nil
}

func (m *Machine) grow(addr int64) error {
	if addr < 0 {
		return fmt.Errorf("intcode: negative address %d", addr)
	}
	if addr >= maxMemory {
		return fmt.Errorf("intcode: address %d beyond memory limit", addr)
	}
	if addr >= int64(len(m.mem)) {
		m.mem = append(m.mem, make([]int64, addr+1-int64(len(m.mem)))...)
	}
	return nil
}

// Run executes until the machine needs input it does not have, produces an
// output, or halts. A fault is sticky: later calls return the same error.
func (m *Machine) Run() (Event, int64, error) {
	if m.lastErr != nil {
		return EventHalt, 0, m.lastErr
	}

	for !m.halted {
		inst, _ := m.Peek(m.ip)
		op := inst % 100

		if m.spent >= m.budget {
			m.lastErr = &FaultError{IP: m.ip, Opcode: inst, Reason: "instruction budget exceeded", Err: ErrBudgetExceeded}
			return EventHalt, 0, m.lastErr
		}
		m.spent++

		fault := func(reason string) (Event, int64, error) {
			m.lastErr = &FaultError{IP: m.ip, Opcode: inst, Reason: reason}
			return EventHalt, 0, m.lastErr
		}

		switch op {
		case opAdd, opMul, opLess, opEquals:
			a, err := m.read(inst, 1)
			if err != nil {
				return fault(err.Error())
			}
			b, err := m.read(inst, 2)
			if err != nil {
				return fault(err.Error())
			}
			var v int64
			switch op {
			case opAdd:
				v = a + b
			case opMul:
				v = a * b
			case opLess:
				v = boolValue(a < b)
			case opEquals:
				v = boolValue(a == b)
			}
			if err := m.write(inst, 3, v); err != nil {
				return fault(err.Error())
			}
			m.ip += 4

		case opInput:
			if len(m.input) == 0 {
				m.spent = 0
				return EventInput, 0, nil
			}
			if err := m.write(inst, 1, m.input[0]); err != nil {
				return fault(err.Error())
			}
			m.input = m.input[1:]
			m.ip += 2

		case opOutput:
			v, err := m.read(inst, 1)
			if err != nil {
				return fault(err.Error())
			}
			m.ip += 2
			return EventOutput, v, nil

		case opJumpTrue, opJumpFalse:
			test, err := m.read(inst, 1)
			if err != nil {
				return fault(err.Error())
			}
			target, err := m.read(inst, 2)
			if err != nil {
				return fault(err.Error())
			}
			if (test != 0) == (op == opJumpTrue) {
				if target < 0 {
					return fault(fmt.Sprintf("jump to negative address %d", target))
				}
				m.ip = target
			} else {
				m.ip += 3
			}

		case opRelBase:
			v, err := m.read(inst, 1)
			if err != nil {
				return fault(err.Error())
			}
			m.base += v
			m.ip += 2

		case opHalt:
			m.halted = true

		default:
			return fault(fmt.Sprintf("unknown opcode %d", op))
		}
	}

	return EventHalt, 0, nil
}

// mode returns the addressing mode of parameter n (1-based).
func mode(inst int64, n int) int64 {
	div := int64(100)
	for range n - 1 {
		div *= 10
	}
	return (inst / div) % 10
}

// address resolves parameter n to a memory address.
func (m *Machine) address(inst int64, n int) (int64, error) {
	raw, err := m.Peek(m.ip + int64(n))
	if err != nil {
		return 0, err
	}
	switch mode(inst, n) {
	case modePosition:
		return raw, nil
	case modeRelative:
		return m.base + raw, nil
	default:
		return 0, fmt.Errorf("parameter %d has no address in mode %d", n, mode(inst, n))
	}
}

func (m *Machine) read(inst int64, n int) (int64, error) {
	if mode(inst, n) == modeImmediate {
		return m.Peek(m.ip + int64(n))
	}
	addr, err := m.address(inst, n)
	if err != nil {
		return 0, err
	}
	return m.Peek(addr)
}

func (m *Machine) write(inst int64, n int, v int64) error {
	addr, err := m.address(inst, n)
	if err != nil {
		return err
	}
	return m.Poke(addr, v)
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// ErrEmptyProgram is returned when a program source holds no values.
var ErrEmptyProgram = errors.New("intcode: empty program")

// ParseProgram reads a comma-separated Intcode program.
// Whitespace, including newlines, around values is ignored.
func ParseProgram(r io.Reader) ([]int64, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("intcode: cannot read program: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, ErrEmptyProgram
	}

	fields := strings.Split(text, ",")
	program := make([]int64, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("intcode: value %d: %w", i, err)
		}
		program = append(program, v)
	}
	return program, nil
}

// LoadProgram reads a program file.
func LoadProgram(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("intcode: cannot open program: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseProgram(f)
}
