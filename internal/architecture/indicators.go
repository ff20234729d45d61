package architecture

import "github.com/oxhq/archlens/internal/model"

// patternIndicators lists the name/namespace indicator words scored for
// each candidate architectural pattern, per spec §4.4.
var patternIndicators = map[model.ArchitecturalPattern][]string{
	model.PatternMVC:             {"Controller", "View", "Model"},
	model.PatternMVP:             {"Presenter", "View", "Model"},
	model.PatternMVVM:            {"ViewModel", "View", "Model", "Binding"},
	model.PatternLayered:         {"Layer", "Service", "Repository", "Controller"},
	model.PatternRepository:      {"Repository", "UnitOfWork", "DataAccess"},
	model.PatternServiceOriented: {"Service", "Client", "Contract", "Endpoint"},
}

// repositoryMethodVerbs are the CRUD-ish verbs whose presence on a
// Repository-named class boosts the Repository pattern score.
var repositoryMethodVerbs = []string{"Create", "Read", "Update", "Delete", "Get", "Add", "Remove"}

// builtinLayers lists the four always-present layers, ordered by level.
var builtinLayers = []layerDef{
	{Name: "Presentation", Level: 1, Indicators: []string{"Controller", "View", "Page", "Form", "UI"}},
	{Name: "Business", Level: 2, Indicators: []string{"Service", "Manager", "Logic", "Handler", "UseCase"}},
	{Name: "Data", Level: 3, Indicators: []string{"Repository", "DAO", "Entity", "Model", "Record"}},
	{Name: "Infrastructure", Level: 4, Indicators: []string{"Infrastructure", "Provider", "Client", "Adapter", "Config"}},
}

type layerDef struct {
	Name       string
	Level      int
	Indicators []string
}

// componentTypeIndicators maps a namespace substring to the component
// type it implies, checked in declaration order (first match wins).
var componentTypeIndicators = []struct {
	Substring string
	Type      model.ComponentType
}{
	{"ui", model.ComponentUI},
	{"view", model.ComponentUI},
	{"form", model.ComponentUI},
	{"business", model.ComponentBusinessLogic},
	{"logic", model.ComponentBusinessLogic},
	{"service", model.ComponentBusinessLogic},
	{"data", model.ComponentDataAccess},
	{"repository", model.ComponentDataAccess},
	{"entity", model.ComponentDataAccess},
	{"utility", model.ComponentUtility},
	{"helper", model.ComponentUtility},
	{"common", model.ComponentUtility},
	{"infrastructure", model.ComponentInfrastructure},
}

// designPatternIndicators lists the name/method indicator words scored
// for each recognized design pattern, per spec §4.4.
var designPatternIndicators = map[model.DesignPatternKind][]string{
	model.PatternSingleton: {"Instance", "GetInstance", "Singleton"},
	model.PatternFactory:   {"Factory", "Create", "Build"},
	model.PatternObserver:  {"Observer", "Subscribe", "Notify", "Listener"},
	model.PatternStrategy:  {"Strategy", "Algorithm", "Execute"},
	model.PatternDecorator: {"Decorator", "Wrap", "Wrapper"},
	model.PatternAdapter:   {"Adapter", "Adapt", "Wrapper"},
}
