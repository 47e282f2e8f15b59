package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"pipenet/internal/domain"
	"pipenet/internal/service"
)

const menuText = `1. Add Pipeline
2. Add Compressor Station
3. View All
4. Edit Pipeline
5. Edit Compressor Station
6. Save Data
7. Load Data
8. Filter by name
9. Connect stations
0. Exit
`

// Menu is the interactive main loop.
type Menu struct {
	svc    *service.NetworkService
	prompt *Prompter
	out    io.Writer
	logger *slog.Logger
}

// NewMenu creates a menu reading answers from in and printing to out.
func NewMenu(svc *service.NetworkService, in io.Reader, out io.Writer, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{
		svc:    svc,
		prompt: NewPrompter(in, out),
		out:    out,
		logger: logger,
	}
}

// Run shows the menu until the user exits or the input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, "\n"+menuText)
		choice, err := m.prompt.Line("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if choice == "0" {
			return nil
		}

		err = m.dispatch(ctx, choice)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			m.logger.Error("menu action failed", "choice", choice, "error", err)
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return m.addPipeline()
	case "2":
		return m.addStation()
	case "3":
		m.viewAll()
		return nil
	case "4":
		return m.editPipelines()
	case "5":
		return m.editStations()
	case "6":
		if err := m.svc.Save(ctx); err != nil {
			return err
		}
		fmt.Fprintln(m.out, "Data saved.")
		return nil
	case "7":
		if err := m.svc.Load(ctx); err != nil {
			return err
		}
		fmt.Fprintln(m.out, "Data loaded.")
		return nil
	case "8":
		return m.filterByName()
	case "9":
		return m.connect()
	}
	fmt.Fprintln(m.out, "Invalid input. Try again.")
	return nil
}

func (m *Menu) addPipeline() error {
	fmt.Fprintf(m.out, "Next free pipeline ID: %d\n", m.svc.NextPipelineID())
	p, err := m.prompt.ReadPipeline(m.svc.HasPipeline)
	if err != nil {
		return err
	}
	return m.svc.AddPipeline(p)
}

func (m *Menu) addStation() error {
	fmt.Fprintf(m.out, "Next free station ID: %d\n", m.svc.NextStationID())
	s, err := m.prompt.ReadStation(m.svc.HasStation)
	if err != nil {
		return err
	}
	return m.svc.AddStation(s)
}

func (m *Menu) viewAll() {
	fmt.Fprintln(m.out, "Pipelines:")
	for _, p := range m.svc.Pipelines() {
		fmt.Fprintln(m.out, p)
	}
	fmt.Fprintf(m.out, "In repair: %d\n", len(m.svc.PipelinesInRepair(true)))
	fmt.Fprintln(m.out, "\nCompressor Stations:")
	for _, s := range m.svc.Stations() {
		fmt.Fprintln(m.out, s)
	}
	PrintOrder(m.out, m.svc.OrderedStations())
}

func (m *Menu) editPipelines() error {
	ids, rejected, err := m.prompt.IDList("Enter Pipeline IDs to edit (separate with commas): ")
	if err != nil {
		return err
	}
	m.reportRejected(rejected)

	missing, err := m.svc.EditPipelines(ids, func(p *domain.Pipeline) error {
		p.ToggleRepair()
		fmt.Fprintf(m.out, "Pipeline %d repair status: %t\n", p.ID, p.InRepair)
		return nil
	})
	m.reportMissing("pipeline", missing)
	return err
}

func (m *Menu) editStations() error {
	ids, rejected, err := m.prompt.IDList("Enter Compressor Station IDs to edit (separate with commas): ")
	if err != nil {
		return err
	}
	m.reportRejected(rejected)

	missing, err := m.svc.EditStations(ids, func(s *domain.Station) error {
		n, err := m.prompt.Int(
			fmt.Sprintf("Station %d (%s): enter number of working workshops (0-%d): ", s.ID, s.Name, s.Workshops),
			func(n int) bool { return n >= 0 && n <= s.Workshops },
			fmt.Sprintf("Invalid input. Enter a number from 0 to %d.", s.Workshops),
		)
		if err != nil {
			return err
		}
		return s.SetActiveWorkshops(n)
	})
	m.reportMissing("station", missing)
	return err
}

func (m *Menu) filterByName() error {
	name, err := m.prompt.Line("Enter a name to filter by: ")
	if err != nil {
		return err
	}
	pipes, stations := m.svc.FilterByName(name)

	fmt.Fprintln(m.out, "\nFiltered Pipelines:")
	printFiltered(m.out, pipes, name)
	fmt.Fprintln(m.out, "\nFiltered Compressor Stations:")
	printFiltered(m.out, stations, name)
	return nil
}

func (m *Menu) connect() error {
	if len(m.svc.Stations()) < 2 {
		fmt.Fprintln(m.out, "At least two compressor stations are needed to make a connection.")
		return nil
	}

	in, err := m.prompt.Int("Enter the ID of the input compressor station: ",
		m.svc.HasStation, "Invalid input. Please enter a valid ID.")
	if err != nil {
		return err
	}
	out, err := m.prompt.Int("Enter the ID of the output compressor station: ",
		func(n int) bool { return n != in && m.svc.HasStation(n) }, "Invalid input. Please enter a valid ID.")
	if err != nil {
		return err
	}
	diameter, err := m.prompt.Int("Enter the diameter of the connecting pipeline: ",
		func(n int) bool { return n > 0 }, "Invalid input. The diameter must be a positive number.")
	if err != nil {
		return err
	}

	conn, err := m.svc.Connect(in, out, diameter, m.prompt.PipelineFiller(m.svc.HasPipeline))
	if err != nil {
		return err
	}
	if conn.Reused {
		fmt.Fprintf(m.out, "Connected the stations using the existing pipeline with diameter %d.\n", diameter)
	} else {
		fmt.Fprintf(m.out, "Created pipeline %d with diameter %d. Connect again to bind it.\n", conn.PipelineID, diameter)
	}
	return nil
}

func (m *Menu) reportRejected(tokens []string) {
	for _, tok := range tokens {
		fmt.Fprintf(m.out, "Skipping invalid ID %q.\n", tok)
	}
}

func (m *Menu) reportMissing(kind string, ids []int) {
	for _, id := range ids {
		fmt.Fprintf(m.out, "No %s with ID %d.\n", kind, id)
	}
}

// PrintOrder writes the topological order of stations, one per line.
func PrintOrder(w io.Writer, stations []domain.Station) {
	fmt.Fprintln(w, "Topological Sort of Compressor Stations (in order of connection):")
	for _, s := range stations {
		fmt.Fprintf(w, "Station ID: %d, Name: %s\n", s.ID, s.Name)
	}
}

type named interface {
	GetName() string
}

func printFiltered[T named](w io.Writer, items []T, filter string) {
	if len(items) == 0 {
		fmt.Fprintf(w, "No items found with name containing: %s\n", filter)
		return
	}
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}
