package sim

// Algorithm is a catalogue entry: a stable key for configuration, the display name used
// for output files, and a factory producing a fresh, stateless-at-start policy.
type Algorithm struct {
	Key  string
	Name string
	New  func(cfg Config) Policy
}

// processAlgorithms is the process-mode catalogue in output order.
var processAlgorithms = []Algorithm{
	{Key: "fcfs", Name: "FirstComeFirstServed", New: func(Config) Policy { return NewFCFS() }},
	{Key: "sjf", Name: "ShortestJobFirst", New: func(Config) Policy { return NewSJF() }},
	{Key: "srtf", Name: "ShortestRemainingTimeFirst", New: func(Config) Policy { return NewSRTF() }},
	{Key: "rr", Name: "RoundRobin", New: func(c Config) Policy { return NewRoundRobin(c.Quantum) }},
	{Key: "priority", Name: "Priority", New: func(Config) Policy { return NewPriority() }},
	{Key: "mq", Name: "MultipleQueues", New: func(c Config) Policy { return NewMultipleQueues(c.Quantum) }},
	{Key: "mlfq", Name: "MultiLevelFeedbackQueue", New: func(Config) Policy { return NewFeedbackQueue(DoublingQuantum) }},
}

// diskAlgorithms is the disk-mode catalogue in output order.
var diskAlgorithms = []Algorithm{
	{Key: "fcfs", Name: "FirstComeFirstServed", New: func(c Config) Policy { return NewDiskFCFS(c.Disk) }},
	{Key: "sstf", Name: "ShortestSeekTimeFirst", New: func(c Config) Policy { return NewSSTF(c.Disk) }},
	{Key: "scan", Name: "Scan", New: func(c Config) Policy { return NewScan(c.Disk) }},
	{Key: "cscan", Name: "CScan", New: func(c Config) Policy { return NewCScan(c.Disk) }},
}

// Algorithms returns the catalogue for mode; nil for modes without algorithms.
func Algorithms(mode Mode) []Algorithm {
	switch mode {
	case ModeProcess:
		return processAlgorithms
	case ModeDisk:
		return diskAlgorithms
	default:
		return nil
	}
}

// IsValidAlgorithm returns true if key names an algorithm of mode.
func IsValidAlgorithm(mode Mode, key string) bool {
	for _, a := range Algorithms(mode) {
		if a.Key == key {
			return true
		}
	}
	return false
}

// Entry is a named policy instance ready to be simulated.
type Entry struct {
	Key    string
	Name   string
	Policy Policy
}

// Compose validates cfg and builds fresh policy instances in catalogue order,
// restricted to cfg.Algorithms when it is non-empty.
func Compose(cfg Config) ([]Entry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	selected := make(map[string]bool, len(cfg.Algorithms))
	for _, key := range cfg.Algorithms {
		selected[key] = true
	}
	var entries []Entry
	for _, a := range Algorithms(cfg.Mode) {
		if len(selected) > 0 && !selected[a.Key] {
			continue
		}
		entries = append(entries, Entry{Key: a.Key, Name: a.Name, Policy: a.New(cfg)})
	}
	return entries, nil
}
