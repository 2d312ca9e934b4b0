package trace

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

var ErrNotFound = errors.New("trace: not found")

var csvHeader = []string{"tick", "wall", "sim_time", "time_scale", "target", "frame_rate", "target_frame_rate", "mode"}

// Store keeps one directory per trace under baseDir, holding metadata.json
// and samples.csv.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID                 string    `json:"id"`
	Script             string    `json:"script"`
	Model              string    `json:"model"`
	Timestamp          time.Time `json:"timestamp"`
	Rate               float64   `json:"rate"`
	Duration           float64   `json:"duration"`
	TransitionDuration float64   `json:"transition_duration"`
	Ticks              int       `json:"ticks"`
	FinalTimeScale     float64   `json:"final_time_scale"`
	FinalSimTime       float64   `json:"final_sim_time"`
}

// Save writes meta and samples and returns the new trace ID. meta.ID,
// Timestamp, Ticks and the final values are filled in here.
func (s *Store) Save(meta Metadata, samples []Sample) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Script, now.UnixNano())
	meta.Timestamp = now
	meta.Ticks = len(samples)
	if len(samples) > 0 {
		last := samples[len(samples)-1]
		meta.FinalTimeScale = last.TimeScale
		meta.FinalSimTime = last.SimTime
	}

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, sm := range samples {
		row := []string{
			strconv.Itoa(sm.Tick),
			strconv.FormatFloat(sm.Wall, 'f', 6, 64),
			strconv.FormatFloat(sm.SimTime, 'f', 6, 64),
			strconv.FormatFloat(sm.TimeScale, 'f', 6, 64),
			strconv.FormatFloat(sm.Target, 'f', 6, 64),
			strconv.Itoa(sm.FrameRate),
			strconv.Itoa(sm.TargetFrameRate),
			sm.Mode,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns saved traces, oldest first. Unreadable entries are skipped.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	traces := make([]Metadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		traces = append(traces, *meta)
	}
	sort.Slice(traces, func(i, j int) bool { return traces[i].Timestamp.Before(traces[j].Timestamp) })
	return traces, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("trace %s: %w", id, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(id string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "samples.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", id, err)
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		sm, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("trace %s row %d: %w", id, i+1, err)
		}
		samples = append(samples, sm)
	}
	return samples, nil
}

func parseRow(rec []string) (Sample, error) {
	var (
		sm   Sample
		errs []error
	)
	atoi := func(s string) int {
		v, err := strconv.Atoi(s)
		errs = append(errs, err)
		return v
	}
	atof := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		errs = append(errs, err)
		return v
	}
	sm.Tick = atoi(rec[0])
	sm.Wall = atof(rec[1])
	sm.SimTime = atof(rec[2])
	sm.TimeScale = atof(rec[3])
	sm.Target = atof(rec[4])
	sm.FrameRate = atoi(rec[5])
	sm.TargetFrameRate = atoi(rec[6])
	sm.Mode = rec[7]
	return sm, errors.Join(errs...)
}
