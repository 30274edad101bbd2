package integrations_test

import (
	"fmt"

	"github.com/matzehuels/kolam/pkg/integrations"
)

func ExampleNormalizeBaseURL() {
	// Trailing slashes are stripped so endpoint paths can be appended
	base, _ := integrations.NormalizeBaseURL("https://kolam.example.com/")
	fmt.Println(base + "/generate-kolam-svg")

	// An empty base selects the local development service
	base, _ = integrations.NormalizeBaseURL("")
	fmt.Println(base)
	// Output:
	// https://kolam.example.com/generate-kolam-svg
	// http://localhost:8000
}
