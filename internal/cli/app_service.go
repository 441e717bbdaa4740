package cli

import "pz-mod-installer/internal/app"

// newAppService is a seam for tests.
var newAppService = app.NewService
