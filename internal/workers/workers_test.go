package workers

import (
	"testing"
)

// countingWorker tracks how many times Run was called.
type countingWorker struct {
	runCount int
}

func (c *countingWorker) Run() {
	c.runCount++
}

// orderWorker appends its id to a shared slice on Run.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run() {
	*o.order = append(*o.order, o.id)
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &countingWorker{}
	w2 := &countingWorker{}

	ws := NewWorkers(w1, w2)
	ws.Run()

	for i, w := range []*countingWorker{w1, w2} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// should not panic with no workers registered
	ws.Run()
}

func TestWorkers_Run_Order(t *testing.T) {
	order := []int{}

	ws := NewWorkers(
		&orderWorker{id: 1, order: &order},
		&orderWorker{id: 2, order: &order},
		&orderWorker{id: 3, order: &order},
	)
	ws.Run()

	expected := []int{1, 2, 3}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &countingWorker{}
	ws := NewWorkers(w)

	ws.Run()
	ws.Run()

	if w.runCount != 2 {
		t.Errorf("expected runCount=2 after 2 calls, got %d", w.runCount)
	}
}
