package coordinator

import "github.com/bnema/navstack/internal/domain/entity"

// recordStack holds the virtual navigation stack. records[i].Index == i and
// the cursor is always the last element, so indices stay contiguous from the
// root to the cursor.
type recordStack struct {
	records []*entity.Record
}

func newRecordStack() *recordStack {
	return &recordStack{}
}

// reset drops everything but a fresh root record.
func (s *recordStack) reset(onRootBack func()) {
	if len(s.records) > 1 {
		for _, r := range s.records[1:] {
			r.Closed = true
		}
	}
	s.records = []*entity.Record{{
		Index:  entity.RootIndex,
		Label:  "root",
		OnBack: onRootBack,
	}}
}

func (s *recordStack) cursor() int {
	return len(s.records) - 1
}

func (s *recordStack) top() *entity.Record {
	return s.records[len(s.records)-1]
}

func (s *recordStack) root() *entity.Record {
	return s.records[entity.RootIndex]
}

func (s *recordStack) at(index int) *entity.Record {
	if index < 0 || index >= len(s.records) {
		return nil
	}
	return s.records[index]
}

// contains reports whether r currently occupies its slot.
func (s *recordStack) contains(r *entity.Record) bool {
	return r != nil && s.at(r.Index) == r
}

// detach swaps r for a closed placeholder so r can be stored at another index
// without occupying two slots.
func (s *recordStack) detach(r *entity.Record) {
	if !s.contains(r) {
		return
	}
	s.records[r.Index] = &entity.Record{Index: r.Index, Label: r.Label, Closed: true}
}

// place stores r at index, dropping everything above it, and returns the
// record previously stored there, if any.
func (s *recordStack) place(r *entity.Record, index int) *entity.Record {
	previous := s.at(index)
	if index < len(s.records) {
		s.records = s.records[:index]
	}
	r.Index = index
	s.records = append(s.records, r)
	return previous
}

// truncate moves the cursor down to index.
func (s *recordStack) truncate(index int) {
	if index < entity.RootIndex {
		index = entity.RootIndex
	}
	if index+1 < len(s.records) {
		for _, r := range s.records[index+1:] {
			r.Closed = true
		}
		s.records = s.records[:index+1]
	}
}

// closedBelow counts contiguous closed records from index downward. The root
// is never counted.
func (s *recordStack) closedBelow(index int) int {
	count := 0
	for i := index; i > entity.RootIndex; i-- {
		if !s.records[i].Closed {
			break
		}
		count++
	}
	return count
}

// liveFromTop returns the live records above the root, topmost first.
func (s *recordStack) liveFromTop() []*entity.Record {
	var live []*entity.Record
	for i := len(s.records) - 1; i > entity.RootIndex; i-- {
		if s.records[i].IsLive() {
			live = append(live, s.records[i])
		}
	}
	return live
}
