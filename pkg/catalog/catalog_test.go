package catalog

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNormalizeLowercasesName(t *testing.T) {
	c := Category{CategoryName: "  Mugs "}
	c.Normalize()
	if c.CategoryName != "mugs" {
		t.Fatalf("CategoryName = %q, want %q", c.CategoryName, "mugs")
	}
}

func TestExists(t *testing.T) {
	if (Category{}).Exists() {
		t.Fatal("zero category reported as existing")
	}
	if !(Category{ID: "abc"}).Exists() {
		t.Fatal("category with id reported as missing")
	}
}

func TestPriceLabel(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		want  string
	}{
		{"unset", nil, "-"},
		{"whole", Float(30), "$30.00"},
		{"cents", Float(12.5), "$12.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price}
			if got := p.PriceLabel(); got != tt.want {
				t.Fatalf("PriceLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimestampMarshal(t *testing.T) {
	var zero Timestamp
	b, err := json.Marshal(zero)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `""` {
		t.Fatalf("zero timestamp = %s, want empty string", b)
	}

	ts := Timestamp{Time: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	b, err = json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "2024-05-01T12:00:00Z") {
		t.Fatalf("timestamp = %s", b)
	}
}

func TestTimestampUnmarshal(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-05-01T12:00:00Z"`), &ts); err != nil {
		t.Fatal(err)
	}
	if ts.IsZero() {
		t.Fatal("parsed timestamp is zero")
	}

	var empty Timestamp
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil {
		t.Fatal(err)
	}
	if !empty.IsZero() {
		t.Fatalf("empty string parsed as %v", empty.Time)
	}
}
