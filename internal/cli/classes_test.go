package cli

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/tharindu/classtrack/internal/catalog"
)

func TestApplyChanged_OnlySetFlagsOverride(t *testing.T) {
	var override catalog.Draft
	cmd := &cobra.Command{Use: "edit"}
	draftFlags(cmd, &override)

	if err := cmd.ParseFlags([]string{"--fee", "1800", "--status", "Inactive"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	draft := catalog.Draft{
		Title:    "Math 101",
		Fee:      "1500.50",
		Currency: "LKR",
		Status:   "Active",
	}
	applyChanged(cmd, &draft, override)

	if draft.Fee != "1800" {
		t.Errorf("Fee = %q, want overridden value", draft.Fee)
	}
	if draft.Status != "Inactive" {
		t.Errorf("Status = %q, want overridden value", draft.Status)
	}
	// Untouched flags keep the stored values.
	if draft.Title != "Math 101" || draft.Currency != "LKR" {
		t.Errorf("unset fields changed: %+v", draft)
	}
}

func TestCheckDraft(t *testing.T) {
	valid := catalog.Draft{
		Title: "Math 101", Subject: "Mathematics", Grade: "10",
		Teacher: "W. Perera", Schedule: "Mon 3-5 PM", Room: "B2",
		Capacity: "30", Fee: "1500.50", Currency: "LKR", Status: "Active",
	}
	if !checkDraft(valid) {
		t.Error("valid draft rejected")
	}

	invalid := valid
	invalid.Capacity = "3.5"
	if checkDraft(invalid) {
		t.Error("fractional capacity accepted")
	}
}
