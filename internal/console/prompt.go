// Package console implements the interactive text front end: field prompts
// that re-ask until the input is valid, and the main menu loop.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pipenet/internal/domain"
	"pipenet/internal/registry"
)

// Prompter reads answers line by line from an input stream.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter reading r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

// Line prints prompt and returns the next trimmed line.
// It returns io.EOF once the input is exhausted.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Int asks until the answer is an integer accepted by valid.
func (p *Prompter) Int(prompt string, valid func(int) bool, invalid string) (int, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && (valid == nil || valid(n)) {
			return n, nil
		}
		fmt.Fprintln(p.out, invalid)
	}
}

// Float asks until the answer is a number accepted by valid.
func (p *Prompter) Float(prompt string, valid func(float64) bool, invalid string) (float64, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err == nil && (valid == nil || valid(f)) {
			return f, nil
		}
		fmt.Fprintln(p.out, invalid)
	}
}

// Bool asks a yes/no question until the answer is y, n, 1 or 0.
func (p *Prompter) Bool(prompt string) (bool, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes", "1", "true":
			return true, nil
		case "n", "no", "0", "false":
			return false, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please answer y or n.")
	}
}

// NonEmpty asks until the answer is not blank.
func (p *Prompter) NonEmpty(prompt string) (string, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(p.out, "Invalid input. The value cannot be empty.")
	}
}

// IDList reads comma-separated ids. Tokens that are not integers are returned
// separately so the caller can report them.
func (p *Prompter) IDList(prompt string) (ids []int, rejected []string, err error) {
	line, err := p.Line(prompt)
	if err != nil {
		return nil, nil, err
	}
	ids, rejected = parseIDList(line)
	return ids, rejected, nil
}

func parseIDList(line string) (ids []int, rejected []string) {
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			rejected = append(rejected, tok)
			continue
		}
		ids = append(ids, n)
	}
	return ids, rejected
}

// ReadStation asks for every station field. taken reports ids already in use.
func (p *Prompter) ReadStation(taken func(int) bool) (domain.Station, error) {
	var s domain.Station
	var err error

	if s.Name, err = p.NonEmpty("Enter station name: "); err != nil {
		return s, err
	}
	if s.ID, err = p.Int("Enter station ID: ", freeID(taken), "Invalid input. The ID must be a positive number not used by another station."); err != nil {
		return s, err
	}
	if s.Workshops, err = p.Int("Enter number of workshops: ", func(n int) bool { return n >= 0 }, "Invalid input. The number of workshops cannot be negative."); err != nil {
		return s, err
	}
	if s.ActiveWorkshops, err = p.Int("Enter number of working workshops: ", func(n int) bool { return n >= 0 && n <= s.Workshops }, fmt.Sprintf("Invalid input. Enter a number from 0 to %d.", s.Workshops)); err != nil {
		return s, err
	}
	if s.Efficiency, err = p.Float("Enter efficiency (0-100): ", func(f float64) bool { return f >= 0 && f <= 100 }, "Invalid input. The efficiency must be between 0 and 100."); err != nil {
		return s, err
	}
	return s, nil
}

// ReadPipeline asks for every pipeline field. Endpoints stay unset.
func (p *Prompter) ReadPipeline(taken func(int) bool) (domain.Pipeline, error) {
	pipe := domain.NewPipeline("", 0, 0, false)
	if err := p.fillPipelineIdentity(pipe, taken); err != nil {
		return *pipe, err
	}

	var err error
	if pipe.Diameter, err = p.Int("Enter pipeline diameter: ", func(n int) bool { return n > 0 }, "Invalid input. The diameter must be a positive number."); err != nil {
		return *pipe, err
	}
	if pipe.InRepair, err = p.Bool("Is the pipeline under repair? (y/n): "); err != nil {
		return *pipe, err
	}
	return *pipe, nil
}

// PipelineFiller returns the hook Connect uses to name a newly created pipeline.
func (p *Prompter) PipelineFiller(taken func(int) bool) registry.PipelineFiller {
	return func(pipe *domain.Pipeline) error {
		fmt.Fprintf(p.out, "No pipeline with diameter %d exists. Creating a new one.\n", pipe.Diameter)
		return p.fillPipelineIdentity(pipe, taken)
	}
}

func (p *Prompter) fillPipelineIdentity(pipe *domain.Pipeline, taken func(int) bool) error {
	var err error
	if pipe.Name, err = p.NonEmpty("Enter pipeline name: "); err != nil {
		return err
	}
	pipe.ID, err = p.Int("Enter pipeline ID: ", freeID(taken), "Invalid input. The ID must be a positive number not used by another pipeline.")
	return err
}

func freeID(taken func(int) bool) func(int) bool {
	return func(n int) bool {
		return n > 0 && (taken == nil || !taken(n))
	}
}
