package dataset

import (
	"bytes"
	"embed"
	"fmt"
	"slices"
)

//go:embed examples/*.csv
var exampleFS embed.FS

// Built-in example dataset names.
const (
	ExampleTwoLoad     = "two-load"
	ExampleLadder      = "ladder"
	ExampleBeforeAfter = "before-after"
	ExamplePrimer      = "primer"
)

var exampleFiles = map[string]string{
	ExampleTwoLoad:     "examples/two_load.csv",
	ExampleLadder:      "examples/ladder.csv",
	ExampleBeforeAfter: "examples/before_after.csv",
	ExamplePrimer:      "examples/primer.csv",
}

// ExampleNames lists the built-in datasets in sorted order.
func ExampleNames() []string {
	names := make([]string, 0, len(exampleFiles))
	for name := range exampleFiles {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Example returns a built-in dataset by name.
func Example(name string) (*Dataset, error) {
	path, ok := exampleFiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExample, name)
	}

	raw, err := exampleFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read example %s: %w", name, err)
	}

	ds, err := ReadCSV(bytes.NewReader(raw), Columns{})
	if err != nil {
		return nil, fmt.Errorf("parse example %s: %w", name, err)
	}

	ds.Name = name

	return ds, nil
}

// MustExample is Example for names known at compile time.
func MustExample(name string) *Dataset {
	ds, err := Example(name)
	if err != nil {
		panic(err)
	}

	return ds
}
