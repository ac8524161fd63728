package trace

// Log is an append-only, time-ordered sequence of records. The distributor
// and the censor each own one; the run result is their concatenation.
type Log struct {
	records []Record
}

// NewLog creates an empty Log ready for recording.
func NewLog() *Log {
	return &Log{records: make([]Record, 0)}
}

// Append adds a record to the end of the log.
func (l *Log) Append(r Record) {
	l.records = append(l.records, r)
}

// Len returns the number of records appended so far.
func (l *Log) Len() int {
	return len(l.records)
}

// Records returns the log contents in append order. The returned slice is
// a copy; callers may retain or mutate it freely.
func (l *Log) Records() []Record {
	return append([]Record(nil), l.records...)
}

// Last returns the most recently appended record, or false if the log is
// empty.
func (l *Log) Last() (Record, bool) {
	if len(l.records) == 0 {
		return Record{}, false
	}
	return l.records[len(l.records)-1], true
}
