package internal

import (
	"testing"

	"github.com/kcmvp/archunit"
)

func TestArchitecture(t *testing.T) {
	domain := archunit.Packages("domain", []string{".../internal/core/domain/..."})
	entities := archunit.Packages("entities", []string{".../internal/entity/..."})
	adapters := archunit.Packages("adapters", []string{".../internal/adapter/..."})
	transport := archunit.Packages("transport", []string{".../internal/mqtt/..."})

	// Rule 1: the domain model carries messages only, it must not know
	// about the actors or the transports that move them
	if err := domain.ShouldNotReferLayers(adapters); err != nil {
		t.Errorf("Architecture violation: Domain depends on Adapters: %v", err)
	}
	if err := domain.ShouldNotReferLayers(transport); err != nil {
		t.Errorf("Architecture violation: Domain depends on Transport: %v", err)
	}

	// Rule 2: entities wrap devices, they must stay actor-free
	if err := entities.ShouldNotReferLayers(adapters); err != nil {
		t.Errorf("Architecture violation: Entities depend on Adapters: %v", err)
	}
}

func TestCloudClientIsStandalone(t *testing.T) {
	cloud := archunit.Packages("melcloud", []string{".../pkg/melcloud"})
	internals := archunit.Packages("internal", []string{".../internal/..."})

	if err := cloud.ShouldNotReferLayers(internals); err != nil {
		t.Errorf("Architecture violation: cloud client depends on internal: %v", err)
	}
}
