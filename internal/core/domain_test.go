package core

import (
	"encoding/json"
	"testing"
)

func TestIDUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want ID
	}{
		{`5`, "5"},
		{`"abc-123"`, "abc-123"},
		{`null`, ""},
	}
	for i, tc := range cases {
		var id ID
		if err := json.Unmarshal([]byte(tc.in), &id); err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if id != tc.want {
			t.Fatalf("case %d: got %q want %q", i, id, tc.want)
		}
	}
}

func TestIDMarshal(t *testing.T) {
	numeric, err := json.Marshal(ID("42"))
	if err != nil {
		t.Fatal(err)
	}
	if string(numeric) != "42" {
		t.Fatalf("numeric id should marshal unquoted, got %s", numeric)
	}
	opaque, err := json.Marshal(ID("uuid-7"))
	if err != nil {
		t.Fatal(err)
	}
	if string(opaque) != `"uuid-7"` {
		t.Fatalf("opaque id should marshal quoted, got %s", opaque)
	}
}

func TestAmountUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want Amount
		ok   bool
	}{
		{`12.5`, 12.5, true},
		{`"12.50"`, 12.5, true},
		{`null`, 0, true},
		{`"not-a-number"`, 0, false},
	}
	for i, tc := range cases {
		var a Amount
		err := json.Unmarshal([]byte(tc.in), &a)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
		if tc.ok && a != tc.want {
			t.Fatalf("case %d: got %v want %v", i, a, tc.want)
		}
	}
}

func TestAmountValidate(t *testing.T) {
	if err := Amount(0.01).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Amount(0).Validate(); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if err := Amount(-3).Validate(); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestWhenUnmarshal(t *testing.T) {
	cases := []struct {
		in       string
		wantDate string
	}{
		{`"2024-01-02T15:04:05Z"`, "2024-01-02"},
		{`"2024-01-02T15:04:05.123Z"`, "2024-01-02"},
		{`"2024-01-02"`, "2024-01-02"},
	}
	for i, tc := range cases {
		var w When
		if err := json.Unmarshal([]byte(tc.in), &w); err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if got := w.Format("2006-01-02"); got != tc.wantDate {
			t.Fatalf("case %d: got %s want %s", i, got, tc.wantDate)
		}
	}

	var w When
	if err := json.Unmarshal([]byte(`"02/01/2024"`), &w); err == nil {
		t.Fatal("expected error for unrecognized format")
	}
}

func TestKindValidate(t *testing.T) {
	if err := Expense.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Income.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Kind("transfer").Validate(); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestCategoryUnmarshalKindFields(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{`{"id":1,"name":"Food","type":"expense"}`, Expense},
		{`{"id":2,"name":"Salary","kind":"income"}`, Income},
		{`{"id":3,"name":"Gift","category_type":"Income"}`, Income},
	}
	for i, tc := range cases {
		var c Category
		if err := json.Unmarshal([]byte(tc.in), &c); err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if c.Kind != tc.want {
			t.Fatalf("case %d: got kind %q want %q", i, c.Kind, tc.want)
		}
	}
}

func TestUserDisplayName(t *testing.T) {
	cases := []struct {
		user User
		want string
	}{
		{User{Nickname: "Nic", FirstName: "First", Username: "user"}, "Nic"},
		{User{FirstName: "First", Username: "user"}, "First"},
		{User{Username: "user"}, "user"},
		{User{}, "User"},
	}
	for i, tc := range cases {
		if got := tc.user.DisplayName(); got != tc.want {
			t.Fatalf("case %d: got %q want %q", i, got, tc.want)
		}
	}
}
