package billingcycle

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseCustomCycle(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "6 meses", want: 6},
		{in: "1 mes", want: 1},
		{in: "3 months", want: 3},
		{in: "1 month", want: 1},
		{in: "2 años", want: 24},
		{in: "1 año", want: 12},
		{in: "2 anos", want: 24},
		{in: "1 year", want: 12},
		{in: "5 years", want: 60},
		{in: "  12 MESES ", want: 12},
		{in: "", wantErr: true},
		{in: "quincenal", wantErr: true},
		{in: "meses 6", wantErr: true},
		{in: "0 meses", wantErr: true},
		{in: "6 semanas", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCustomCycle(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnparseableCustomCycle) {
				t.Fatalf("ParseCustomCycle(%q) err = %v, want ErrUnparseableCustomCycle", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCustomCycle(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseCustomCycle(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMonths(t *testing.T) {
	tests := []struct {
		cycle Cycle
		want  int
	}{
		{CycleOneTime, 0},
		{CycleMonthly, 1},
		{CycleSemiannual, 6},
		{CycleAnnual, 12},
		{CycleBiennial, 24},
		{CycleTriennial, 36},
	}
	for _, tt := range tests {
		got, err := Months(tt.cycle, "")
		if err != nil {
			t.Fatalf("Months(%s) unexpected error: %v", tt.cycle, err)
		}
		if got != tt.want {
			t.Fatalf("Months(%s) = %d, want %d", tt.cycle, got, tt.want)
		}
	}
}

func TestEndDate(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		cycle Cycle
		text  string
		want  *time.Time
	}{
		{name: "monthly", start: date(2024, 1, 15), cycle: CycleMonthly, want: ptr(date(2024, 2, 15))},
		{name: "semiannual", start: date(2024, 1, 15), cycle: CycleSemiannual, want: ptr(date(2024, 7, 15))},
		{name: "annual", start: date(2024, 2, 29), cycle: CycleAnnual, want: ptr(date(2025, 3, 1))},
		{name: "biennial", start: date(2024, 3, 1), cycle: CycleBiennial, want: ptr(date(2026, 3, 1))},
		{name: "triennial", start: date(2024, 3, 1), cycle: CycleTriennial, want: ptr(date(2027, 3, 1))},
		{name: "custom months", start: date(2024, 1, 10), cycle: CycleCustom, text: "6 meses", want: ptr(date(2024, 7, 10))},
		{name: "custom years", start: date(2024, 1, 10), cycle: CycleCustom, text: "2 años", want: ptr(date(2026, 1, 10))},
		{name: "one-time has no computed end", start: date(2024, 1, 10), cycle: CycleOneTime, want: nil},
		// AddDate normalization: Jan 31 + 1 month overflows into March.
		{name: "monthly from jan 31", start: date(2024, 1, 31), cycle: CycleMonthly, want: ptr(date(2024, 3, 2))},
		{name: "monthly from jan 31 non-leap", start: date(2023, 1, 31), cycle: CycleMonthly, want: ptr(date(2023, 3, 3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EndDate(tt.start, tt.cycle, tt.text)
			if err != nil {
				t.Fatalf("EndDate: unexpected error: %v", err)
			}
			if tt.want == nil {
				if got != nil {
					t.Fatalf("EndDate = %v, want nil", got)
				}
				return
			}
			if got == nil || !got.Equal(*tt.want) {
				t.Fatalf("EndDate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEndDateUnparseableCustom(t *testing.T) {
	got, err := EndDate(date(2024, 1, 1), CycleCustom, "whenever")
	if !errors.Is(err, ErrUnparseableCustomCycle) {
		t.Fatalf("err = %v, want ErrUnparseableCustomCycle", err)
	}
	if got != nil {
		t.Fatalf("expected nil end date on parse failure, got %v", got)
	}
}

func TestEndDateDeterministic(t *testing.T) {
	start := date(2024, 5, 20)
	first, err := EndDate(start, CycleAnnual, "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := EndDate(start, CycleAnnual, "")
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(*second) {
		t.Fatalf("EndDate not deterministic: %v vs %v", first, second)
	}
	if !first.After(start) {
		t.Fatalf("EndDate %v not after start %v", first, start)
	}
}

func ptr(t time.Time) *time.Time { return &t }
