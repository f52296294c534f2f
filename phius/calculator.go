package phius

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"ph_calc/diagnostics"
	"ph_calc/model"
)

// Options control a calculator run.
type Options struct {
	Fractions Fractions
	CPUs      int // <= 0 means runtime.NumCPU()
}

func DefaultOptions() Options {
	return Options{Fractions: DefaultFractions()}
}

// Result is the outcome of a calculator run. Stories are in order of first
// appearance in the room list; spaces are in room then space order.
type Result struct {
	Stories     []*ResidentialStory
	Spaces      []*NonResidentialSpace
	Residential Loads

	NonResidentialMEL      float64 // kWh/yr
	NonResidentialLighting float64 // kWh/yr
}

func checkRooms(rooms []*model.Room) error {
	for _, r := range rooms {
		if len(r.Spaces()) == 0 {
			return diagnostics.Errorf(diagnostics.PhiusMissingSpaces, r.Name, "room has no spaces")
		}
		if r.People == nil {
			return diagnostics.Errorf(diagnostics.PhiusMissingOccupancy, r.Name, "room has no occupancy")
		}
	}
	return nil
}

// groupByStory splits the residential rooms by story, keeping the order in
// which stories first appear.
func groupByStory(rooms []*model.Room) ([]string, map[string][]*model.Room) {
	var names []string
	groups := make(map[string][]*model.Room)
	for _, r := range rooms {
		if !r.IsResidential() {
			continue
		}
		if _, ok := groups[r.Story]; !ok {
			names = append(names, r.Story)
		}
		groups[r.Story] = append(groups[r.Story], r)
	}
	return names, groups
}

/*
Calculate runs the multi-family calculator over rooms.

	Args:
		rooms: all rooms of the project, residential and non-residential
		opts: lighting fractions and parallelism
	Returns:
		result, warnings, error
	Notes:
		stories are computed in parallel; all totals are summed
		sequentially in story order.
*/
func Calculate(rooms []*model.Room, opts Options) (*Result, *diagnostics.Report, error) {
	report := diagnostics.NewReport()
	if err := opts.Fractions.Validate(); err != nil {
		return nil, report, err
	}
	if err := checkRooms(rooms); err != nil {
		return nil, report, err
	}

	names, groups := groupByStory(rooms)
	switch len(names) {
	case 0:
		report.Warn(diagnostics.PhiusNoResidentialRooms, "", "no residential rooms; residential loads are zero")
	case 1:
		report.Warn(diagnostics.PhiusSingleStory, names[0], "all residential rooms are on one story")
	}

	cpus := opts.CPUs
	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}
	stories := make([]*ResidentialStory, len(names))
	var g errgroup.Group
	g.SetLimit(cpus)
	for i, name := range names {
		g.Go(func() error {
			s, err := newResidentialStory(name, groups[name], opts.Fractions)
			if err != nil {
				return err
			}
			stories[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, report, err
	}

	res := &Result{Stories: stories}
	for _, s := range stories {
		res.Residential = res.Residential.add(s.Loads)
	}

	for _, r := range rooms {
		if r.IsResidential() {
			continue
		}
		for _, sp := range r.Spaces() {
			s, err := newNonResidentialSpace(r, sp)
			if err != nil {
				return nil, report, err
			}
			res.Spaces = append(res.Spaces, s)
			res.NonResidentialMEL += s.MEL
			res.NonResidentialLighting += s.Lighting
		}
	}
	return res, report, nil
}
