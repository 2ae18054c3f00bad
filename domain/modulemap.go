package domain

import "fmt"

// ModuleMap holds a mapping of module names to the candidate Updates.xml
// package names that could satisfy them. Package naming conventions are not
// predictable, so each module keeps a list of every name it might appear
// under. A reverse mapping makes package lookup and module removal constant
// time, so scanning a document does not cost a linear search per package.
type ModuleMap struct {
	modulesToPackages map[string][]string
	packagesToModules map[string]string
}

// NewModuleMap creates a ModuleMap from an initial module-to-candidates mapping
func NewModuleMap(initial map[string][]string) *ModuleMap {
	m := &ModuleMap{
		modulesToPackages: make(map[string][]string, len(initial)),
		packagesToModules: make(map[string]string),
	}
	for module, packageNames := range initial {
		m.modulesToPackages[module] = append([]string(nil), packageNames...)
		for _, name := range packageNames {
			m.packagesToModules[name] = module
		}
	}
	return m
}

// Add registers more candidate package names for a module. A package name
// already claimed by another module is a collision and fails.
func (m *ModuleMap) Add(module string, packageNames []string) error {
	for _, name := range packageNames {
		if owner, exists := m.packagesToModules[name]; exists && owner != module {
			return fmt.Errorf("package name %q already mapped to module %q", name, owner)
		}
	}
	m.modulesToPackages[module] = append(m.modulesToPackages[module], packageNames...)
	for _, name := range packageNames {
		m.packagesToModules[name] = module
	}
	return nil
}

// HasPackage reports whether any module lists the package name as a candidate
func (m *ModuleMap) HasPackage(packageName string) bool {
	_, ok := m.packagesToModules[packageName]
	return ok
}

// RemoveModuleForPackage removes the module owning the given package name,
// along with all of that module's candidate names. Used to track what still
// needs to be installed once one candidate has been satisfied.
func (m *ModuleMap) RemoveModuleForPackage(packageName string) {
	module, ok := m.packagesToModules[packageName]
	if !ok {
		return
	}
	for _, name := range m.modulesToPackages[module] {
		delete(m.packagesToModules, name)
	}
	delete(m.modulesToPackages, module)
}

// Modules returns the module names that still have unsatisfied candidates
func (m *ModuleMap) Modules() []string {
	modules := make([]string, 0, len(m.modulesToPackages))
	for module := range m.modulesToPackages {
		modules = append(modules, module)
	}
	return modules
}

// Len returns the number of modules still tracked
func (m *ModuleMap) Len() int {
	return len(m.modulesToPackages)
}
