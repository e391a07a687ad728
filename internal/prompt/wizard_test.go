package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubDriver struct {
	selectIdx  []int
	confirm    []bool
	selectPos  int
	confirmPos int
	selects    []SelectConfig
	confirms   []ConfirmConfig
	err        error
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirms = append(s.confirms, cfg)
	if s.err != nil {
		return false, s.err
	}
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.err != nil {
		return -1, s.err
	}
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func testChoices() Choices {
	return Choices{
		Platforms:  []Option{{Name: "green", Description: "3 expanders"}, {Name: "red", Description: "1 expander"}},
		Strategies: []Option{{Name: "descriptor"}, {Name: "pin-table"}},
		Templates:  []Option{{Name: "legato-c"}},
		DefaultAddressing: func(platform string) string {
			if platform == "green" {
				return "pin-table"
			}
			return "descriptor"
		},
	}
}

func TestAsk(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{0, 1, 0}, confirm: []bool{true}}

	got, err := Ask(context.Background(), driver, testChoices(), Selection{})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	want := Selection{Platform: "green", Addressing: "pin-table", Template: "legato-c", Prelude: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	if len(driver.selects) != 3 {
		t.Fatalf("expected 3 select prompts, got %d", len(driver.selects))
	}
	if driver.selects[1].DefaultIndex != 1 {
		t.Fatalf("strategy prompt should preselect the platform default, got index %d", driver.selects[1].DefaultIndex)
	}
	if diff := cmp.Diff([]string{"3 expanders", "1 expander"}, driver.selects[0].Descriptions); diff != "" {
		t.Fatalf("platform descriptions mismatch (-want +got):\n%s", diff)
	}
}

func TestAsk_PresetDefaults(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1, 0, 0}, confirm: []bool{false}}

	_, err := Ask(context.Background(), driver, testChoices(), Selection{Platform: "red", Addressing: "pin-table"})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if driver.selects[0].DefaultIndex != 1 {
		t.Fatalf("platform default index = %d", driver.selects[0].DefaultIndex)
	}
	if driver.selects[1].DefaultIndex != 1 {
		t.Fatalf("preset addressing should win over the platform default, got %d", driver.selects[1].DefaultIndex)
	}
}

func TestAsk_Aborted(t *testing.T) {
	driver := &stubDriver{err: ErrAborted}

	if _, err := Ask(context.Background(), driver, testChoices(), Selection{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestAsk_OutOfRangeSelection(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{5}}

	if _, err := Ask(context.Background(), driver, testChoices(), Selection{}); err == nil {
		t.Fatalf("expected error for out-of-range selection")
	}
}

func TestAsk_NoOptions(t *testing.T) {
	driver := &stubDriver{}
	choices := testChoices()
	choices.Platforms = nil

	if _, err := Ask(context.Background(), driver, choices, Selection{}); err == nil {
		t.Fatalf("expected error with no platforms")
	}
}

func TestConfirmSplice(t *testing.T) {
	driver := &stubDriver{confirm: []bool{true}}

	ok, err := ConfirmSplice(context.Background(), driver, "expanderConfigurationRed.c")
	if err != nil || !ok {
		t.Fatalf("confirm splice = %v, %v", ok, err)
	}
	if driver.confirms[0].Message != "Replace the generated region of expanderConfigurationRed.c?" {
		t.Fatalf("unexpected message %q", driver.confirms[0].Message)
	}
}
