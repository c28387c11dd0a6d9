package validate

import "testing"

func TestRun_CollectsAllFailuresInOrder(t *testing.T) {
	res := Run([]Field{
		{Value: "x", Name: "name", Valid: Name, Message: "bad name"},
		{Value: "alice@example.com", Name: "email", Valid: Email, Message: "bad email"},
		{Value: "123", Name: "phoneNumber", Valid: Phone, Message: "bad phone"},
		{Value: "short", Name: "password", Valid: Password, Message: "bad password"},
	})

	if res.OK {
		t.Fatalf("expected failure")
	}
	want := []string{"bad name", "bad phone", "bad password"}
	if len(res.Errors) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), res.Errors)
	}
	for i := range want {
		if res.Errors[i] != want[i] {
			t.Fatalf("error %d: want %q, got %q", i, want[i], res.Errors[i])
		}
	}
}

func TestRun_AllValid(t *testing.T) {
	res := Run([]Field{
		{Value: "Alice", Name: "name", Valid: Name, Message: "bad name"},
		{Value: "alice@example.com", Name: "email", Valid: Email, Message: "bad email"},
	})
	if !res.OK || res.Errors != nil {
		t.Fatalf("expected ok, got %+v", res)
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"alice@example.com", "a.b+c@sub.domain.org", "  user@example.com  "}
	invalid := []string{"", "1user@example.com", "user@", "user@example", "@example.com"}

	for _, s := range valid {
		if !Email(s) {
			t.Errorf("Email(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if Email(s) {
			t.Errorf("Email(%q) = true, want false", s)
		}
	}
}

func TestName(t *testing.T) {
	if !Name("Alice O'Connor-Smith") {
		t.Errorf("expected valid name")
	}
	if Name("A") {
		t.Errorf("single char must be rejected")
	}
	if Name("Alice123") {
		t.Errorf("digits must be rejected")
	}
}

func TestPhone(t *testing.T) {
	if !Phone("9812345678") || !Phone("9712345678") {
		t.Errorf("expected valid phones")
	}
	for _, s := range []string{"9912345678", "981234567", "98123456789", "abcdefghij"} {
		if Phone(s) {
			t.Errorf("Phone(%q) = true, want false", s)
		}
	}
}

func TestAddressFields(t *testing.T) {
	if !AddressLine("12 Main Street, Block #4/B") {
		t.Errorf("expected valid address line")
	}
	if AddressLine("abc") {
		t.Errorf("too-short address line must be rejected")
	}
	if !Landmark("") {
		t.Errorf("empty landmark is allowed")
	}
	if !Landmark("Near City Mall (east gate)") {
		t.Errorf("expected valid landmark")
	}
	if !Place("Kathmandu") || Place("K") {
		t.Errorf("place validation broken")
	}
	if !PostalCode("44200") || PostalCode("1") {
		t.Errorf("postal code validation broken")
	}
	if !Label("") || !Label("Office") || Label("Work") {
		t.Errorf("label validation broken")
	}
}

func TestCategoryFields(t *testing.T) {
	if !CategoryName("Home Appliances") {
		t.Errorf("expected valid category name")
	}
	if CategoryName("Gadgets 2000") {
		t.Errorf("digits must be rejected in category names")
	}
	if !Description("Electronics and more") || Description(" x ") {
		t.Errorf("description validation broken")
	}
}
