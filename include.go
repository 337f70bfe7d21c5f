package forth

import (
	"os"
	"path/filepath"
)

// include implements INCLUDE: reads a filename token, opens it (trying
// OFF_PATH-relative if a direct open fails, spec.md §5's secondary search
// path), and pushes it as a new input source. The file is popped off the
// input stack automatically once quit's tokenizer drains it to EOF.
func (vm *VM) include() error {
	name, err := vm.token()
	if err != nil {
		return errf("INCLUDE", CodeNoInput, "%v", err)
	}
	f, err := vm.openInclude(name)
	if err != nil {
		return errf(name, CodeNoFile, "%v", err)
	}
	if perr := vm.input.Push(f, name); perr != nil {
		f.Close()
		return errf(name, CodeInStack, "%v", perr)
	}
	return nil
}

func (vm *VM) openInclude(name string) (*os.File, error) {
	f, err := os.Open(name)
	if err == nil {
		return f, nil
	}
	if vm.offPath == "" || filepath.IsAbs(name) {
		return nil, err
	}
	return os.Open(filepath.Join(vm.offPath, name))
}
