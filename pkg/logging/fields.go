package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers

// Trial tags log output with the trial name
func Trial(name string) Field {
	return String("trial", name)
}

// Check tags log output with a quality check name
func Check(name string) Field {
	return String("check", name)
}

// Node tags log output with a body-tree node index
func Node(n int) Field {
	return Int("node", n)
}

// Identifier tags log output with a schema variable identifier
func Identifier(name string) Field {
	return String("identifier", name)
}

func Component(name string) Field {
	return String("component", name)
}

func Count(n int) Field {
	return Int("count", n)
}

func Stage(s string) Field {
	return String("stage", s)
}
