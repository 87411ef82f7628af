package browser

import (
	"context"
	"errors"
	"testing"
)

func TestFirstSuccess(t *testing.T) {
	fail := func(ctx context.Context) (string, error) { return "", errors.New("nope") }
	ok := func(v string) func(ctx context.Context) (string, error) {
		return func(ctx context.Context) (string, error) { return v, nil }
	}

	var skipped []string
	onSkip := func(p Probe, err error) { skipped = append(skipped, p.Name) }

	got, found := FirstSuccess(context.Background(), []Probe{
		{Name: "a", Check: fail},
		{Name: "b", Check: ok("114.0.5735.90")},
		{Name: "c", Check: ok("never reached")},
	}, onSkip)

	if !found || got != "114.0.5735.90" {
		t.Errorf("FirstSuccess() = %q, %v", got, found)
	}
	if len(skipped) != 1 || skipped[0] != "a" {
		t.Errorf("skipped = %v, want [a]", skipped)
	}
}

func TestFirstSuccess_AllFail(t *testing.T) {
	fail := func(ctx context.Context) (string, error) { return "", errors.New("nope") }

	if _, found := FirstSuccess(context.Background(), []Probe{{Name: "a", Check: fail}}, nil); found {
		t.Error("expected no success")
	}
	if _, found := FirstSuccess(context.Background(), nil, nil); found {
		t.Error("expected no success for empty probe list")
	}
}
