package step

import (
	"testing"
)

type result struct {
	Message string
}

type otherResult struct {
	Message string
}

func TestKeyIdentity(t *testing.T) {
	testcases := []struct {
		name  string
		a, b  Key
		equal bool
	}{
		{name: "same type", a: KeyOf[result](), b: KeyOf[result](), equal: true},
		{name: "same shape different type", a: KeyOf[result](), b: KeyOf[otherResult](), equal: false},
		{name: "value and pointer", a: KeyOf[result](), b: KeyOf[*result](), equal: false},
		{name: "dynamic type", a: KeyOf[result](), b: KeyFor(result{Message: "x"}), equal: true},
		{name: "dynamic pointer", a: KeyOf[*result](), b: KeyFor(&result{}), equal: true},
		{name: "interface is not its implementation", a: KeyOf[error](), b: KeyFor(errString("x")), equal: false},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a == tc.b; got != tc.equal {
				t.Errorf("%s == %s: expected %v, got %v", tc.a, tc.b, tc.equal, got)
			}
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestKeyStrings(t *testing.T) {
	testcases := []struct {
		key   Key
		long  string
		short string
	}{
		{key: KeyOf[result](), long: "step.result", short: "result"},
		{key: KeyOf[*result](), long: "*step.result", short: "result"},
		{key: KeyOf[[]result](), long: "[]step.result", short: "result"},
		{key: KeyOf[string](), long: "string", short: "string"},
		{key: Key{}, long: "<none>", short: ""},
	}

	for _, tc := range testcases {
		t.Run(tc.long, func(t *testing.T) {
			if got := tc.key.String(); got != tc.long {
				t.Errorf("String(): expected %q, got %q", tc.long, got)
			}
			if got := tc.key.ShortString(); got != tc.short {
				t.Errorf("ShortString(): expected %q, got %q", tc.short, got)
			}
		})
	}
}

func TestKeyAccepts(t *testing.T) {
	k := KeyOf[result]()

	if !k.Accepts(result{}) {
		t.Errorf("expected %s to accept a result value", k)
	}
	if k.Accepts(&result{}) {
		t.Errorf("expected %s to reject a *result value", k)
	}
	if k.Accepts(nil) {
		t.Errorf("expected %s to reject nil", k)
	}
	if !KeyOf[error]().Accepts(errString("x")) {
		t.Errorf("expected the error key to accept an error implementation")
	}
	if (Key{}).Accepts(result{}) {
		t.Errorf("expected the zero key to reject everything")
	}
	if !(Key{}).IsZero() || k.IsZero() {
		t.Errorf("IsZero mismatch")
	}
}
