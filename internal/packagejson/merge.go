package packagejson

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/errs"
)

// FindScriptConflicts returns the sorted names of scripts in cs that
// already exist in original with a different command.
func FindScriptConflicts(original *Object, cs ChangeSet) ([]string, error) {
	scripts, err := original.Object("scripts")
	if err != nil {
		return nil, errs.Wrap(err, errs.KindParse, "packagejson.scripts")
	}

	var conflicts []string
	for _, s := range cs.Scripts {
		if existing, ok := scripts.String(s.Name); ok && existing == s.Command {
			continue
		}
		if scripts.Has(s.Name) {
			conflicts = append(conflicts, s.Name)
		}
	}
	sort.Strings(conflicts)
	return conflicts, nil
}

// Merge applies cs to a copy of original. Versions supplies the version
// range for each dependency; names without an entry get "latest".
func Merge(original *Object, cs ChangeSet, versions Versions, force bool) (*Object, error) {
	conflicts, err := FindScriptConflicts(original, cs)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 && !force {
		return nil, scriptConflictError(conflicts)
	}

	out := original.Clone()

	scripts, _ := out.Object("scripts")
	for _, s := range cs.Scripts {
		if err := scripts.Set(s.Name, s.Command); err != nil {
			return nil, err
		}
	}
	if err := out.Set("scripts", scripts); err != nil {
		return nil, err
	}

	if err := mergeDeps(out, "dependencies", cs.Dependencies, versions); err != nil {
		return nil, err
	}
	if err := mergeDeps(out, "devDependencies", cs.DevDependencies, versions); err != nil {
		return nil, err
	}

	if len(cs.Jest) > 0 {
		jest, err := out.Object("jest")
		if err != nil {
			return nil, errs.Wrap(err, errs.KindParse, "packagejson.jest")
		}
		keys := make([]string, 0, len(cs.Jest))
		for k := range cs.Jest {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := jest.Set(k, cs.Jest[k]); err != nil {
				return nil, err
			}
		}
		if err := out.Set("jest", jest); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// mergeDeps adds names missing from the dependency map under key. Entries
// the user already declared are left alone.
func mergeDeps(doc *Object, key string, names []string, versions Versions) error {
	if len(names) == 0 {
		return nil
	}
	deps, err := doc.Object(key)
	if err != nil {
		return errs.Wrap(err, errs.KindParse, "packagejson."+key)
	}
	for _, name := range names {
		if deps.Has(name) {
			continue
		}
		v := versions[name]
		if v == "" {
			v = FallbackVersion
		}
		if err := deps.Set(name, v); err != nil {
			return err
		}
	}
	deps.SortKeys()
	return doc.Set(key, deps)
}

func scriptConflictError(names []string) error {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}

	if len(quoted) == 1 {
		return errs.New(errs.KindConflict, "packagejson.merge",
			"Script %s already exists in package.json.", quoted[0]).
			WithAdvice("Rename it or use --force to overwrite it.")
	}
	return errs.New(errs.KindConflict, "packagejson.merge",
		"Scripts %s already exist in package.json.", strings.Join(quoted, ", ")).
		WithAdvice("Rename them or use --force to overwrite them.")
}
