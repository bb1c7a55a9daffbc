package config

import (
	"os"
	"testing"
)

func TestValidateNotifyConfig(t *testing.T) {
	if err := validateNotifyConfig(DefaultNotifyConfig()); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	bad := DefaultNotifyConfig()
	bad.AcknowledgementText = "   "
	if err := validateNotifyConfig(bad); err == nil {
		t.Fatal("blank acknowledgement text must be rejected")
	}

	bad = DefaultNotifyConfig()
	bad.ProviderOrder = nil
	if err := validateNotifyConfig(bad); err == nil {
		t.Fatal("empty provider order must be rejected")
	}

	bad = DefaultNotifyConfig()
	bad.ProviderOrder = []string{"smoke-signals"}
	if err := validateNotifyConfig(bad); err == nil {
		t.Fatal("unknown provider must be rejected")
	}
}

func TestNewNotifyConfigHolderWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	holder, err := NewNotifyConfigHolder()
	if err != nil {
		t.Fatalf("holder without config file: %v", err)
	}

	got := holder.Get()
	want := DefaultNotifyConfig()
	if got.AcknowledgementText != want.AcknowledgementText {
		t.Fatalf("acknowledgement text = %q", got.AcknowledgementText)
	}
	if len(got.ProviderOrder) != len(want.ProviderOrder) {
		t.Fatalf("provider order = %v", got.ProviderOrder)
	}
}

func TestNewNotifyConfigHolderMergesPartialFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	// Only the provider order is set; the acknowledgement text must
	// fall back to the compiled-in default instead of failing
	// validation.
	partial := "notify:\n  providerOrder:\n    - whatsapp\n"
	if err := os.WriteFile("notify.yml", []byte(partial), 0o644); err != nil {
		t.Fatalf("write notify.yml: %v", err)
	}

	holder, err := NewNotifyConfigHolder()
	if err != nil {
		t.Fatalf("holder with partial config file: %v", err)
	}

	got := holder.Get()
	if got.AcknowledgementText != DefaultNotifyConfig().AcknowledgementText {
		t.Fatalf("acknowledgement text = %q, want default", got.AcknowledgementText)
	}
	if len(got.ProviderOrder) != 1 || got.ProviderOrder[0] != "whatsapp" {
		t.Fatalf("provider order = %v, want [whatsapp]", got.ProviderOrder)
	}
}

func TestStaticHolderServesPinnedConfig(t *testing.T) {
	cfg := DefaultNotifyConfig()
	cfg.ProviderOrder = []string{"whatsapp"}

	holder := StaticNotifyConfigHolder(cfg)
	got := holder.Get()
	if len(got.ProviderOrder) != 1 || got.ProviderOrder[0] != "whatsapp" {
		t.Fatalf("unexpected config: %+v", got)
	}
}
