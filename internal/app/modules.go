package app

import (
	"github.com/vk/discoverygo/internal/construct"
	"github.com/vk/discoverygo/services/envinfo"
	"github.com/vk/discoverygo/services/eventbus"
	"github.com/vk/discoverygo/services/httpclient"
	"github.com/vk/discoverygo/services/socketio"
)

// coreModules is the definitive list of service modules that are compiled
// into the discoverygo binary. Their constructors are what manifest type
// identifiers can refer to.
var coreModules = []construct.Module{
	&envinfo.Module{},
	&eventbus.Module{},
	&httpclient.Module{},
	&socketio.Module{},
}
