package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestKinds_BuiltInDefaults(t *testing.T) {
	env, _ := testEnv(t, nil)

	stdout, stderr, code := runTID(t, env, "", "kinds")

	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	out := lines(stdout)
	if out[0] != "config: (built-in defaults)" {
		t.Errorf("first line = %q", out[0])
	}
	if len(out) != 2 || strings.TrimSpace(out[1]) != "*  uuid" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestKinds_StarterConfig(t *testing.T) {
	env, _ := testEnv(t, nil)
	initProject(t, env)

	stdout, stderr, code := runTID(t, env, "", "kinds")

	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"uuid version=7", "order  ulid", "user   nanoid prefix=usr_"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestKinds_JSON(t *testing.T) {
	env, dir := testEnv(t, nil)
	path := writeConfig(t, dir, "kinds:\n  InvoiceLine: {generator: sqids, min_length: 8}\n")

	stdout, _, code := runTID(t, env, "", "kinds", "--json")

	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	var resp kindsResponse
	if err := json.Unmarshal([]byte(stdout), &resp); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if resp.Config != path {
		t.Errorf("config = %q, want %q", resp.Config, path)
	}
	spec, ok := resp.Kinds["invoice_line"]
	if !ok || spec.Name != "sqids" || spec.MinLength != 8 {
		t.Errorf("kinds = %+v", resp.Kinds)
	}
	if resp.Default.Name != "uuid" {
		t.Errorf("default = %+v", resp.Default)
	}
}

func TestDescribeSpec_HidesSalt(t *testing.T) {
	env, dir := testEnv(t, nil)
	writeConfig(t, dir, "kinds:\n  coupon: {generator: hashids, salt: secret}\n")

	stdout, _, _ := runTID(t, env, "", "kinds")

	if strings.Contains(stdout, "secret") || !strings.Contains(stdout, "salt=***") {
		t.Errorf("stdout = %q", stdout)
	}
}
