package native

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/tomasz-nowicki/rebo/internal/value"
)

// NativeDoc, ParamDoc and NativeInfo are aliases onto the value package:
// documentation metadata lives on value.FunctionValue.Doc (to keep it
// reachable without an import cycle), while help-system code in this
// package keeps its own names for readability.
type NativeDoc = value.NativeDoc
type ParamDoc = value.ParamDoc
type NativeInfo = value.FunctionValue

// GetCategories returns a list of all unique categories from a registry.
func GetCategories(registry map[string]*NativeInfo) []string {
	categorySet := make(map[string]bool)
	for _, info := range registry {
		if info.Doc != nil && info.Doc.Category != "" {
			categorySet[info.Doc.Category] = true
		}
	}

	categories := make([]string, 0, len(categorySet))
	for cat := range categorySet {
		categories = append(categories, cat)
	}
	return categories
}

// GetFunctionsInCategory returns all function names in a given category.
func GetFunctionsInCategory(registry map[string]*NativeInfo, category string) []string {
	functions := make([]string, 0)
	for name, info := range registry {
		if info.Doc != nil && info.Doc.Category == category {
			functions = append(functions, name)
		}
	}
	return functions
}

// CountDocumented returns the number of documented vs total native functions.
func CountDocumented(registry map[string]*NativeInfo) (documented, total int) {
	total = len(registry)
	for _, info := range registry {
		if info.Doc != nil && info.Doc.HasDoc() {
			documented++
		}
	}
	return documented, total
}

// NewDocTemplate creates a documentation template for a new native function.
// This is a helper for developers adding new natives.
func NewDocTemplate(funcName, category string, paramCount int) *NativeDoc {
	params := make([]ParamDoc, paramCount)
	for i := 0; i < paramCount; i++ {
		params[i] = ParamDoc{
			Name:        fmt.Sprintf("param%d", i+1),
			Type:        "any-type!",
			Description: "TODO: describe this parameter",
			Optional:    false,
		}
	}

	return &NativeDoc{
		Category:    category,
		Summary:     "TODO: one-line summary",
		Description: "TODO: detailed description",
		Parameters:  params,
		Returns:     "[any-type!] TODO: describe return value",
		Examples: []string{
			funcName + " example-args  ; => expected-result",
		},
		SeeAlso: []string{},
		Tags:    []string{},
	}
}

// ValidateRegistry checks all documentation in the registry and returns
// a list of validation errors. Returns empty slice if all docs are valid.
func ValidateRegistry(registry map[string]*NativeInfo) []string {
	errors := make([]string, 0)
	for name, info := range registry {
		if info.Doc != nil {
			if err := info.Doc.Validate(name); err != "" {
				errors = append(errors, err)
			}
		}
	}
	return errors
}

// ValidateAllNatives runs ValidateRegistry over FunctionRegistry and folds
// every complaint into a single error via multierror, so a startup caller
// gets one failure carrying every documentation gap at once instead of
// having to loop over a []string itself.
func ValidateAllNatives() error {
	var result *multierror.Error
	for _, msg := range ValidateRegistry(FunctionRegistry) {
		result = multierror.Append(result, fmt.Errorf("%s", msg))
	}
	return result.ErrorOrNil()
}

// DocTemplate provides a string template for developers to copy when documenting natives.
const DocTemplate = `
// Documentation template for native function
Doc: &NativeDoc{
	Category: "Category",  // Math, Control, Series, Data, Function, I/O, Ports, Objects
	Summary: "One-line description of what this function does",
	Description: ` + "`" + `
Detailed explanation of the function including:
- What it does
- When to use it
- Important behavior notes
- Edge cases and limitations
` + "`" + `,
	Parameters: []ParamDoc{
		{
			Name: "param1",
			Type: "type!",  // e.g., "integer!", "block!", "any-type!"
			Description: "Description of the parameter",
			Optional: false,
		},
	},
	Returns: "[return-type!] Description of return value",
	Examples: []string{
		"function-name arg1  ; => result",
		"x: [1 2 3]" + "\n" + "function-name x  ; => modified-result",
	},
	SeeAlso: []string{"related-function-1", "related-function-2"},
	Tags: []string{"tag1", "tag2"},
},
`
