package ecs

// Stage is a named system slot in the tick order.
type Stage struct {
	Name   string
	System System
}

// Scheduler runs its stages once per tick in insertion order and then ends
// the tick by flushing the world's event queue.
type Scheduler struct {
	stages []Stage
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	s.AddStage("", system)
}

func (s *Scheduler) AddStage(name string, system System) {
	if system == nil {
		return
	}
	s.stages = append(s.stages, Stage{Name: name, System: system})
}

func (s *Scheduler) Update(w *World) {
	if w == nil {
		return
	}
	for _, stage := range s.stages {
		stage.System.Update(w)
	}
	w.events.flush()
}

// Stages returns the stage names in run order.
func (s *Scheduler) Stages() []string {
	names := make([]string, 0, len(s.stages))
	for _, stage := range s.stages {
		names = append(names, stage.Name)
	}
	return names
}
