package cmd

import "testing"

func TestBuildCommandTree_RegistersCommands(t *testing.T) {
	root := BuildCommandTree(nil)

	want := []string{"generate", "generators", "init", "kinds", "reserve", "validate"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestBuildCommandTree_GenerateAliases(t *testing.T) {
	root := BuildCommandTree(nil)

	for _, alias := range []string{"gen", "new"} {
		sub, _, err := root.Find([]string{alias})
		if err != nil || sub.Name() != "generate" {
			t.Errorf("alias %q resolved to %v (%v)", alias, sub, err)
		}
	}
}
