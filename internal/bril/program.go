package bril

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Program is a decoded Bril program.
type Program struct {
	Functions []Function `json:"functions"`
}

// Arg is a typed function parameter.
type Arg struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Function is one function of a program.
type Function struct {
	Name   string  `json:"name"`
	Args   []Arg   `json:"args,omitempty"`
	Type   Type    `json:"type,omitempty"`
	Instrs []Instr `json:"instrs"`
}

// ErrNoFunctions is returned when a program declares no functions.
var ErrNoFunctions = errors.New("program has no functions")

// FunctionNotFoundError reports a function name that is not declared.
type FunctionNotFoundError struct {
	Name string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("function %q not found", e.Name)
}

// Func returns the function called name, or the first function when name is empty.
func (p *Program) Func(name string) (*Function, error) {
	if p == nil || len(p.Functions) == 0 {
		return nil, ErrNoFunctions
	}
	if name == "" {
		return &p.Functions[0], nil
	}
	for i := range p.Functions {
		if p.Functions[i].Name == name {
			return &p.Functions[i], nil
		}
	}
	return nil, &FunctionNotFoundError{Name: name}
}

// LoadStage tells which step of loading failed.
type LoadStage uint8

const (
	// StageRead covers opening and reading the file.
	StageRead LoadStage = iota + 1
	// StageDecode covers JSON decoding.
	StageDecode
)

func (s LoadStage) String() string {
	switch s {
	case StageRead:
		return "read"
	case StageDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// LoadError wraps a failure to load a program from disk.
type LoadError struct {
	Path  string
	Stage LoadStage
	Err   error
}

func (e *LoadError) Error() string {
	switch e.Stage {
	case StageRead:
		if errors.Is(e.Err, fs.ErrNotExist) {
			return fmt.Sprintf("file %q not found", e.Path)
		}
		return fmt.Sprintf("failed to read %q: %v", e.Path, e.Err)
	case StageDecode:
		return fmt.Sprintf("invalid JSON in file %q: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// NotFound reports whether the file did not exist.
func (e *LoadError) NotFound() bool {
	return e.Stage == StageRead && errors.Is(e.Err, fs.ErrNotExist)
}

// Load reads and decodes the program stored at path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: StageRead, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: StageRead, Err: err}
	}
	prog, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: StageDecode, Err: err}
	}
	return prog, nil
}

// Parse decodes a program from its JSON text.
func Parse(data []byte) (*Program, error) {
	var prog Program
	if err := json.Unmarshal(data, &prog); err != nil {
		return nil, err
	}
	return &prog, nil
}

type wireInstr struct {
	Label  *string         `json:"label"`
	Op     *string         `json:"op"`
	Dest   string          `json:"dest"`
	Type   Type            `json:"type"`
	Args   []string        `json:"args"`
	Labels []string        `json:"labels"`
	Funcs  []string        `json:"funcs"`
	Value  json.RawMessage `json:"value"`
}

// UnmarshalJSON decodes either a label marker or an operation record.
func (in *Instr) UnmarshalJSON(data []byte) error {
	var w wireInstr
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.Op != nil:
		*in = Instr{
			Kind:   ClassifyOp(*w.Op),
			Op:     *w.Op,
			Dest:   w.Dest,
			Type:   w.Type,
			Args:   w.Args,
			Labels: w.Labels,
			Funcs:  w.Funcs,
			Value:  w.Value,
		}
	case w.Label != nil:
		*in = Label(*w.Label)
	default:
		return errors.New("instruction has neither \"op\" nor \"label\"")
	}
	return nil
}

// Type is a Bril type name. Parameterized types such as {"ptr":"int"} are
// kept as their compact JSON text.
type Type string

// UnmarshalJSON accepts a plain name or a parameterized type object.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Type(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*t = Type(buf.String())
	return nil
}
