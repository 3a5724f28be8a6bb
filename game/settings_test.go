package game

import (
	"errors"
	"testing"
	"time"
)

func TestSettings_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
		ok     bool
	}{
		{"defaults", func(*Settings) {}, true},
		{"zero tick", func(s *Settings) { s.TickInterval = 0 }, false},
		{"zero field", func(s *Settings) { s.FieldSize = 0 }, false},
		{"zero cell size", func(s *Settings) { s.CellSize = 0 }, false},
		{"negative food", func(s *Settings) { s.FoodCount = -1 }, false},
		{"snake longer than field", func(s *Settings) { s.SnakeStartLength = 16 }, false},
		{"zero length snake", func(s *Settings) { s.SnakeStartLength = 0 }, false},
		{"no snakes, zero length ok", func(s *Settings) { s.SnakeCount = 0; s.SnakeStartLength = 0 }, true},
		{"spawn chance above 100", func(s *Settings) { s.Food.FoodSpawnChance = 101 }, false},
		{"negative minimum food", func(s *Settings) { s.Food.MinimumFood = -2 }, false},
		{"overfull field", func(s *Settings) {
			s.FieldSize = 3
			s.SnakeCount = 5
			s.SnakeStartLength = 3
			s.FoodCount = 13
		}, false},
		{"exactly full field", func(s *Settings) {
			s.FieldSize = 3
			s.SnakeCount = 5
			s.SnakeStartLength = 3
			s.FoodCount = 12
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutate(&s)
			err := s.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected error")
				}
				if !errors.Is(err, ErrInvalidSettings) {
					t.Fatalf("error %v does not wrap ErrInvalidSettings", err)
				}
			}
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.TickInterval != 500*time.Millisecond || s.FieldSize != 15 || s.SnakeCount != 2 ||
		s.SnakeStartLength != 3 || s.FoodCount != 10 || s.CellSize != 1 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.Food.Enabled() || s.WanderWithoutFood {
		t.Fatalf("supplementary behaviour must default off: %+v", s)
	}
	f := s.Frame()
	if f.FieldSize != 15 || f.CellSize != 1 {
		t.Fatalf("frame=%+v", f)
	}
}
