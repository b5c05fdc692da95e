package intcode

import (
	"errors"
	"strings"
	"testing"
)

// runAll feeds inputs and collects outputs until halt.
func runAll(t *testing.T, program []int64, inputs ...int64) []int64 {
	t.Helper()
	m := NewMachine(program)
	for _, in := range inputs {
		m.Input(in)
	}

	var out []int64
	for range 100000 {
		ev, v, err := m.Run()
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		switch ev {
		case EventOutput:
			out = append(out, v)
		case EventInput:
			t.Fatal("program asked for more input than given")
		case EventHalt:
			return out
		}
	}
	t.Fatal("program did not halt")
	return nil
}

func TestMachinePrograms(t *testing.T) {
	quine := []int64{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	equalsEight := []int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}
	lessThanEight := []int64{3, 3, 1107, -1, 8, 3, 4, 3, 99}
	jumpZero := []int64{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}

	tests := []struct {
		name     string
		program  []int64
		inputs   []int64
		expected []int64
	}{
		{"echo", []int64{3, 0, 4, 0, 99}, []int64{42}, []int64{42}},
		{"relative quine", quine, nil, quine},
		{"large product", []int64{1102, 34915192, 34915192, 7, 4, 7, 99, 0}, nil, []int64{1219070632396864}},
		{"large immediate", []int64{104, 1125899906842624, 99}, nil, []int64{1125899906842624}},
		{"equals 8 true", equalsEight, []int64{8}, []int64{1}},
		{"equals 8 false", equalsEight, []int64{5}, []int64{0}},
		{"less than 8 true", lessThanEight, []int64{3}, []int64{1}},
		{"less than 8 false", lessThanEight, []int64{9}, []int64{0}},
		{"jump zero", jumpZero, []int64{0}, []int64{0}},
		{"jump nonzero", jumpZero, []int64{7}, []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runAll(t, tt.program, tt.inputs...)
			if len(got) != len(tt.expected) {
				t.Fatalf("outputs = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("outputs = %v, expected %v", got, tt.expected)
				}
			}
		})
	}
}

func TestMachineArithmetic(t *testing.T) {
	// 1,9,10,11: mem[11] = mem[9] + mem[10]; 2,11,10,11: mem[11] *= mem[10]
	m := NewMachine([]int64{1, 9, 10, 11, 2, 11, 10, 11, 99, 3, 4, 0})
	if ev, _, err := m.Run(); err != nil || ev != EventHalt {
		t.Fatalf("Run() = %s, %v; expected halt", ev, err)
	}
	if v, _ := m.Peek(11); v != 28 {
		t.Errorf("mem[11] = %d, expected 28", v)
	}
	if !m.Halted() {
		t.Error("Halted() should be true")
	}
}

func TestMachineWaitsForInput(t *testing.T) {
	m := NewMachine([]int64{3, 0, 4, 0, 99})

	ev, _, err := m.Run()
	if err != nil || ev != EventInput {
		t.Fatalf("Run() = %s, %v; expected input", ev, err)
	}
	// Still waiting without input
	if ev, _, _ := m.Run(); ev != EventInput {
		t.Fatalf("Run() = %s, expected input again", ev)
	}

	m.Input(-1)
	ev, v, err := m.Run()
	if err != nil || ev != EventOutput || v != -1 {
		t.Fatalf("Run() = %s %d, %v; expected output -1", ev, v, err)
	}
}

func TestMachineFaults(t *testing.T) {
	tests := []struct {
		name    string
		program []int64
	}{
		{"unknown opcode", []int64{42}},
		{"immediate write", []int64{11101, 1, 1, 5, 99}},
		{"negative address", []int64{4, -5, 99}},
		{"bad mode", []int64{304, 0, 99}},
		{"negative jump", []int64{1105, 1, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(tt.program)
			_, _, err := m.Run()

			var fault *FaultError
			if !errors.As(err, &fault) {
				t.Fatalf("Run() error = %v, expected *FaultError", err)
			}
			if fault.IP != 0 {
				t.Errorf("fault IP = %d, expected 0", fault.IP)
			}

			// Faults are sticky
			if _, _, again := m.Run(); !errors.Is(again, err) {
				t.Errorf("second Run() error = %v, expected the same fault", again)
			}
		})
	}
}

func TestMachineBudget(t *testing.T) {
	tests := []struct {
		name    string
		program []int64
		budget  int64
	}{
		{"jump to self", []int64{1105, 1, 0}, 1000},
		{"output forever", []int64{104, 7, 1105, 1, 0}, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(tt.program)
			m.SetBudget(tt.budget)

			var err error
			for i := int64(0); i <= tt.budget && err == nil; i++ {
				_, _, err = m.Run()
			}

			var fault *FaultError
			if !errors.As(err, &fault) {
				t.Fatalf("Run() error = %v, expected *FaultError", err)
			}
			if !errors.Is(err, ErrBudgetExceeded) {
				t.Errorf("Run() error = %v, expected ErrBudgetExceeded", err)
			}
		})
	}
}

func TestMachineBudgetResetsOnInput(t *testing.T) {
	// Reads input forever; each wait starts a fresh budget
	m := NewMachine([]int64{3, 10, 1105, 1, 0})
	m.SetBudget(5)

	for i := 0; i < 20; i++ {
		ev, _, err := m.Run()
		if err != nil {
			t.Fatalf("Run() #%d error = %v, expected nil", i, err)
		}
		if ev != EventInput {
			t.Fatalf("Run() #%d = %v, expected EventInput", i, ev)
		}
		m.Input(1)
	}
}

func TestMachineMemoryGrowth(t *testing.T) {
	// Write 7 far past the program, then read it back
	got := runAll(t, []int64{1101, 3, 4, 500, 4, 500, 99})
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("outputs = %v, expected [7]", got)
	}

	m := NewMachine(nil)
	if err := m.Poke(maxMemory, 1); err == nil {
		t.Error("Poke beyond the memory limit should fail")
	}
	if _, err := m.Peek(-1); err == nil {
		t.Error("Peek at a negative address should fail")
	}
}

func TestNewMachineCopiesProgram(t *testing.T) {
	program := []int64{1101, 1, 1, 0, 99}
	m := NewMachine(program)
	if _, _, err := m.Run(); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if program[0] != 1101 {
		t.Error("machine should not modify the caller's program")
	}
}

func TestParseProgram(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int64
		wantErr  bool
	}{
		{"simple", "1,0,0,3,99", []int64{1, 0, 0, 3, 99}, false},
		{"whitespace", " 104, -7 ,\n99\n", []int64{104, -7, 99}, false},
		{"empty", "  \n", nil, true},
		{"garbage", "1,x,3", nil, true},
		{"trailing comma", "1,2,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProgram(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseProgram(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProgram(%q) failed: %v", tt.input, err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("ParseProgram(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("ParseProgram(%q) = %v, expected %v", tt.input, got, tt.expected)
				}
			}
		})
	}

	if _, err := ParseProgram(strings.NewReader("")); !errors.Is(err, ErrEmptyProgram) {
		t.Errorf("empty program error = %v, expected ErrEmptyProgram", err)
	}
}
