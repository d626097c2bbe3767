package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
)

// TranslateWGSL converts the entry point for kind in a WGSL module into
// GLSL source for the given version. If entry is empty, the first entry
// point of that stage is used.
//
// The module is validated before code generation; all validation errors
// are reported, one per line.
func TranslateWGSL(source string, kind StageKind, entry string, version glsl.Version) (string, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return "", err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return "", fmt.Errorf("lowering error: %w", err)
	}

	verrs, err := naga.Validate(module)
	if err != nil {
		return "", fmt.Errorf("validation error: %w", err)
	}
	if len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return "", fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}

	name, err := entryPointFor(module, kind, entry)
	if err != nil {
		return "", err
	}

	out, _, err := glsl.Compile(module, glsl.Options{
		LangVersion: version,
		EntryPoint:  name,
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

var irStages = map[StageKind]ir.ShaderStage{
	StageVertex:   ir.StageVertex,
	StageFragment: ir.StageFragment,
}

func entryPointFor(module *ir.Module, kind StageKind, entry string) (string, error) {
	stage, ok := irStages[kind]
	if !ok {
		return "", fmt.Errorf("unsupported stage %s", kind)
	}

	var found []string
	for _, ep := range module.EntryPoints {
		if ep.Stage != stage {
			continue
		}
		if entry == "" || ep.Name == entry {
			return ep.Name, nil
		}
		found = append(found, ep.Name)
	}

	if entry != "" {
		if len(found) == 0 {
			return "", fmt.Errorf("no %s entry point named %q", kind, entry)
		}
		return "", fmt.Errorf("no %s entry point named %q (have %s)", kind, entry, strings.Join(found, ", "))
	}
	return "", fmt.Errorf("module has no %s entry point", kind)
}
