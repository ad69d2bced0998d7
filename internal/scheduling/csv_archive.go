package scheduling

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"
	"time"
)

var csvHeader = []string{"id", "owner", "animal", "treatment", "start", "end", "room"}

// CSVArchive persists appointments to a single CSV file, one record per row.
// Every mutation rewrites the full file through a temp-file rename, the same
// whole-file discipline the clinic's record files have always used.
type CSVArchive struct {
	path string

	mu      sync.Mutex
	records map[int64]Appointment
	order   []int64
	loaded  bool
}

// NewCSVArchive creates an archive backed by the file at path. The file is
// created on first write; a missing file loads as an empty archive.
func NewCSVArchive(path string) *CSVArchive {
	return &CSVArchive{
		path:    path,
		records: make(map[int64]Appointment),
	}
}

// Load reads the archived appointments in file order.
func (a *CSVArchive) Load(ctx context.Context) ([]Appointment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLoaded(); err != nil {
		return nil, err
	}
	out := make([]Appointment, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.records[id])
	}
	return out, nil
}

// Insert appends a record and rewrites the file.
func (a *CSVArchive) Insert(ctx context.Context, appt Appointment) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLoaded(); err != nil {
		return err
	}
	if _, dup := a.records[appt.ID]; dup {
		return fmt.Errorf("csv archive: duplicate id %d", appt.ID)
	}
	a.records[appt.ID] = appt
	a.order = append(a.order, appt.ID)
	if err := a.flush(); err != nil {
		delete(a.records, appt.ID)
		a.order = a.order[:len(a.order)-1]
		return err
	}
	return nil
}

// Update replaces a record and rewrites the file.
func (a *CSVArchive) Update(ctx context.Context, appt Appointment) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLoaded(); err != nil {
		return err
	}
	prev, ok := a.records[appt.ID]
	if !ok {
		return fmt.Errorf("csv archive: unknown id %d", appt.ID)
	}
	a.records[appt.ID] = appt
	if err := a.flush(); err != nil {
		a.records[appt.ID] = prev
		return err
	}
	return nil
}

// Delete removes a record and rewrites the file.
func (a *CSVArchive) Delete(ctx context.Context, id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLoaded(); err != nil {
		return err
	}
	prev, ok := a.records[id]
	if !ok {
		return fmt.Errorf("csv archive: unknown id %d", id)
	}
	idx := -1
	for i, existing := range a.order {
		if existing == id {
			idx = i
			break
		}
	}
	delete(a.records, id)
	if idx >= 0 {
		a.order = append(a.order[:idx], a.order[idx+1:]...)
	}
	if err := a.flush(); err != nil {
		a.records[id] = prev
		if idx >= 0 {
			a.order = append(a.order[:idx], append([]int64{id}, a.order[idx:]...)...)
		}
		return err
	}
	return nil
}

func (a *CSVArchive) ensureLoaded() error {
	if a.loaded {
		return nil
	}
	f, err := os.Open(a.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.loaded = true
			return nil
		}
		return fmt.Errorf("csv archive: open: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("csv archive: read: %w", err)
	}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		appt, err := rowToAppointment(row)
		if err != nil {
			return fmt.Errorf("csv archive: row %d: %w", i, err)
		}
		a.records[appt.ID] = appt
		a.order = append(a.order, appt.ID)
	}
	a.loaded = true
	return nil
}

// flush rewrites the whole file atomically via a temp-file rename.
func (a *CSVArchive) flush() error {
	tmp := a.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("csv archive: create temp: %w", err)
	}

	w := csv.NewWriter(f)
	writeErr := w.Write(csvHeader)
	for _, id := range a.order {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(appointmentToRow(a.records[id]))
	}
	w.Flush()
	if writeErr == nil {
		writeErr = w.Error()
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmp)
		return fmt.Errorf("csv archive: write: %w", writeErr)
	}
	if err := os.Rename(tmp, a.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("csv archive: rename: %w", err)
	}
	return nil
}

func appointmentToRow(appt Appointment) []string {
	return []string{
		strconv.FormatInt(appt.ID, 10),
		appt.Owner,
		appt.Animal,
		appt.Treatment,
		appt.Start.Format(time.RFC3339),
		appt.End.Format(time.RFC3339),
		appt.Room,
	}
}

func rowToAppointment(row []string) (Appointment, error) {
	if len(row) != len(csvHeader) {
		return Appointment{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return Appointment{}, fmt.Errorf("bad id %q: %w", row[0], err)
	}
	start, err := time.Parse(time.RFC3339, row[4])
	if err != nil {
		return Appointment{}, fmt.Errorf("bad start %q: %w", row[4], err)
	}
	end, err := time.Parse(time.RFC3339, row[5])
	if err != nil {
		return Appointment{}, fmt.Errorf("bad end %q: %w", row[5], err)
	}
	return Appointment{
		ID:        id,
		Owner:     row[1],
		Animal:    row[2],
		Treatment: row[3],
		Start:     start,
		End:       end,
		Room:      row[6],
	}, nil
}
