// internal/hostname/hostname_test.go
//
// Unit-tests for ExtractSubdomain and friends.
//
// Run: go test ./internal/hostname -v

package hostname

import "testing"

const root = "brainplaykids.com"

func TestExtractSubdomain_Production(t *testing.T) {
	sub, ok := ExtractSubdomain("smith.brainplaykids.com", root)
	if !ok || sub != "smith" {
		t.Fatalf("got (%q, %v), want (\"smith\", true)", sub, ok)
	}
}

func TestExtractSubdomain_Apex(t *testing.T) {
	if sub, ok := ExtractSubdomain("brainplaykids.com", root); ok {
		t.Fatalf("apex domain yielded subdomain %q", sub)
	}
}

func TestExtractSubdomain_PortStripped(t *testing.T) {
	sub, ok := ExtractSubdomain("smith.brainplaykids.com:3000", root)
	if !ok || sub != "smith" {
		t.Fatalf("got (%q, %v), want (\"smith\", true)", sub, ok)
	}
}

func TestExtractSubdomain_LocalhostConvention(t *testing.T) {
	// The trailing “localhost” label wins over the configured root domain.
	sub, ok := ExtractSubdomain("smith.localhost:3000", root)
	if !ok || sub != "smith" {
		t.Fatalf("got (%q, %v), want (\"smith\", true)", sub, ok)
	}
}

func TestExtractSubdomain_PlainLocalhost(t *testing.T) {
	if sub, ok := ExtractSubdomain("localhost", root); ok {
		t.Fatalf("plain localhost yielded subdomain %q", sub)
	}
}

func TestExtractSubdomain_MultiLabelLocalhost(t *testing.T) {
	sub, ok := ExtractSubdomain("a.b.localhost", root)
	if !ok || sub != "a.b" {
		t.Fatalf("got (%q, %v), want (\"a.b\", true)", sub, ok)
	}
}

func TestExtractSubdomain_Empty(t *testing.T) {
	if _, ok := ExtractSubdomain("", root); ok {
		t.Fatal("empty host yielded a subdomain")
	}
	if _, ok := ExtractSubdomain("   ", root); ok {
		t.Fatal("blank host yielded a subdomain")
	}
}

func TestExtractSubdomain_ForeignHost(t *testing.T) {
	if sub, ok := ExtractSubdomain("evil.example.org", root); ok {
		t.Fatalf("foreign host yielded subdomain %q", sub)
	}
}

func TestExtractSubdomain_CaseInsensitive(t *testing.T) {
	sub, ok := ExtractSubdomain("Smith.BrainPlayKids.COM", root)
	if !ok || sub != "smith" {
		t.Fatalf("got (%q, %v), want (\"smith\", true)", sub, ok)
	}
}

func TestIsLocal(t *testing.T) {
	for host, want := range map[string]bool{
		"localhost":               true,
		"smith.localhost:3000":    true,
		"smith.brainplaykids.com": false,
		"brainplaykids.com":       false,
	} {
		if got := IsLocal(host); got != want {
			t.Errorf("IsLocal(%q) = %v, want %v", host, got, want)
		}
	}
}

func TestStripPort(t *testing.T) {
	if got := StripPort("example.com:8080"); got != "example.com" {
		t.Fatalf("got %q", got)
	}
	if got := StripPort("example.com"); got != "example.com" {
		t.Fatalf("got %q", got)
	}
}
