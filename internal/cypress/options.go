package cypress

// DefaultBundler is elided from component preset options.
const DefaultBundler = "vite"

// Preset names the function injected into a config and the module exporting it.
type Preset struct {
	Name   string `json:"name" yaml:"name"`
	Module string `json:"module" yaml:"module"`
}

var (
	DefaultE2EPreset = Preset{
		Name:   "nxE2EPreset",
		Module: "@nx/cypress/plugins/cypress-preset",
	}
	DefaultComponentPreset = Preset{
		Name:   "nxComponentTestingPreset",
		Module: "@nx/react/plugins/component-testing",
	}
)

// E2EPresetOptions is serialized as the second argument of the e2e preset call.
// Field order is the order keys appear in the generated config.
type E2EPresetOptions struct {
	CypressDir         string            `json:"cypressDir,omitempty"`
	Bundler            string            `json:"bundler,omitempty"`
	WebServerCommands  map[string]string `json:"webServerCommands,omitempty"`
	CIWebServerCommand string            `json:"ciWebServerCommand,omitempty"`
	CIBaseURL          string            `json:"ciBaseUrl,omitempty"`
	WebServerConfig    *WebServerConfig  `json:"webServerConfig,omitempty"`
	JSX                bool              `json:"jsx,omitempty"`
	TestingType        string            `json:"testingType,omitempty"`
}

// WebServerConfig tunes how the preset waits for the dev server.
type WebServerConfig struct {
	Timeout             int  `json:"timeout,omitempty"`
	ReuseExistingServer bool `json:"reuseExistingServer,omitempty"`
}

// ComponentTestingOptions is serialized as the second argument of the
// component preset call.
type ComponentTestingOptions struct {
	CTTargetName string `json:"ctTargetName,omitempty"`
	Bundler      string `json:"bundler,omitempty"`
	BuildTarget  string `json:"buildTarget,omitempty"`
	Compiler     string `json:"compiler,omitempty"`
}

// withoutDefaults returns a copy with the default bundler removed.
func (o ComponentTestingOptions) withoutDefaults() ComponentTestingOptions {
	if o.Bundler == DefaultBundler {
		o.Bundler = ""
	}
	return o
}

func (o ComponentTestingOptions) isEmpty() bool {
	return o == ComponentTestingOptions{}
}
