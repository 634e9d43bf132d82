package inmemory

import "sync"

type Snapshot struct {
	InteractionTotal    uint64            `json:"interaction_total"`
	InteractionSuccess  uint64            `json:"interaction_success"`
	InteractionRejected uint64            `json:"interaction_rejected"`
	InteractionConflict uint64            `json:"interaction_conflict"`
	InteractionFailure  uint64            `json:"interaction_failure"`
	CompanionsRecovered uint64            `json:"companions_recovered"`
	ByKind              map[string]uint64 `json:"by_kind"`
	RejectedByKind      map[string]uint64 `json:"rejected_by_kind"`
}

type Recorder struct {
	mu         sync.Mutex
	success    uint64
	rejected   uint64
	conflict   uint64
	failure    uint64
	recovered  uint64
	byKind     map[string]uint64
	rejectedBy map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind:     map[string]uint64{},
		rejectedBy: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byKind[kind]++
}

func (r *Recorder) RecordRejected(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.rejectedBy[kind]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

// RecordRecovered counts corrupted companions replaced by defaults. It is not
// part of the interaction total.
func (r *Recorder) RecordRecovered() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recovered++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		InteractionSuccess:  r.success,
		InteractionRejected: r.rejected,
		InteractionConflict: r.conflict,
		InteractionFailure:  r.failure,
		InteractionTotal:    r.success + r.rejected + r.conflict + r.failure,
		CompanionsRecovered: r.recovered,
		ByKind:              make(map[string]uint64, len(r.byKind)),
		RejectedByKind:      make(map[string]uint64, len(r.rejectedBy)),
	}
	for k, v := range r.byKind {
		out.ByKind[k] = v
	}
	for k, v := range r.rejectedBy {
		out.RejectedByKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
