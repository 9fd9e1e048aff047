package app

import (
	"github.com/vk/confgrid/internal/registry"
	"github.com/vk/confgrid/modules/classify"
	"github.com/vk/confgrid/modules/generic"
	"github.com/vk/confgrid/modules/scanners"
	"github.com/vk/confgrid/modules/textgen"
)

// coreModules is the definitive list of all modules compiled into the
// confgrid binary. Scanners register first so that task schemas can
// resolve scanner names while they are being declared; the generic task
// registers before the others because it is the default selection.
var coreModules = []registry.Module{
	&scanners.Module{},
	&generic.Module{},
	&textgen.Module{},
	&classify.Module{},
}
