package random

import "testing"

func TestSampleStaysInsideInterval(t *testing.T) {
	s := NewUniformSampler()
	for i := 0; i < 10000; i++ {
		v := s.Sample(-0.1, 0.3)
		if v < -0.1 || v > 0.3 {
			t.Fatalf("sample %v outside [-0.1, 0.3]", v)
		}
	}
}

func TestSampleProducesVariedValues(t *testing.T) {
	s := NewUniformSampler()
	first := s.Sample(0, 1000)
	for i := 0; i < 50; i++ {
		if s.Sample(0, 1000) != first {
			return
		}
	}
	t.Fatalf("expected varied samples, got %v repeated", first)
}

func TestSampleDegenerateInterval(t *testing.T) {
	s := NewUniformSampler()
	if got := s.Sample(42, 42); got != 42 {
		t.Fatalf("expected 42 for degenerate interval, got %v", got)
	}
}

func TestSamplePanicsWhenMinAboveMax(t *testing.T) {
	s := NewUniformSampler()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for min > max")
		}
	}()
	s.Sample(10, 5)
}
