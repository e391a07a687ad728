package testsupport_test

import (
	"testing"

	"github.com/goliatone/go-gpiogen/pkg/testsupport"
)

func TestDeclaredIdentifiers(t *testing.T) {
	src := "le_result_t foo_SetInput\n(\n    void\n)\n{\n}\n\nfoo_Edge_t foo_GetEdgeSense\n(\n    void\n)\n{\n}\nvoid *ptr_Get\n(\n)\n"
	got := testsupport.DeclaredIdentifiers(src)
	want := []string{"foo_SetInput", "foo_GetEdgeSense", "ptr_Get"}
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("declared identifiers (-want +got):\n%s", diff)
	}
}
