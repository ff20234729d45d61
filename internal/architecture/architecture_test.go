package architecture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/model"
)

func classSym(name, fqn, namespace string) model.Symbol {
	return model.Symbol{Name: name, FQN: fqn, Kind: model.KindClass, File: fqn + ".cs",
		Metadata: map[string]string{"Namespace": namespace}}
}

func methodSym(name, fqn string, vis model.Visibility) model.Symbol {
	return model.Symbol{Name: name, FQN: fqn, Kind: model.KindMethod, Visibility: vis}
}

func TestAnalyzeDetectsMVCPattern(t *testing.T) {
	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			classSym("WidgetController", "Acme.Web.WidgetController", "Acme.Web"),
			methodSym("Index", "Acme.Web.WidgetController.Index", model.VisibilityPublic),
			classSym("WidgetView", "Acme.Web.WidgetView", "Acme.Web"),
			classSym("WidgetModel", "Acme.Web.WidgetModel", "Acme.Web"),
		},
	}
	deps := &model.DependencyAnalysis{}

	analysis, diags, err := Analyze(context.Background(), code, deps, config.DefaultArchitectureOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, model.PatternMVC, analysis.DetectedPattern)
}

func TestAnalyzeUnknownPatternWhenNoIndicators(t *testing.T) {
	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			classSym("Widget", "Acme.Widget", "Acme"),
		},
	}
	analysis, _, err := Analyze(context.Background(), code, &model.DependencyAnalysis{}, config.DefaultArchitectureOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, model.PatternUnknownOverall, analysis.DetectedPattern)
}

func TestAnalyzeLayersJoinByIndicator(t *testing.T) {
	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			classSym("OrderController", "Acme.OrderController", "Acme"),
			classSym("OrderRepository", "Acme.OrderRepository", "Acme"),
		},
	}
	analysis, _, err := Analyze(context.Background(), code, &model.DependencyAnalysis{}, config.DefaultArchitectureOptions(), nil)
	require.NoError(t, err)

	byName := map[string]model.Layer{}
	for _, l := range analysis.Layers {
		byName[l.Name] = l
	}
	require.Contains(t, byName, "Presentation")
	require.Contains(t, byName, "Data")
	assert.Equal(t, 1, byName["Presentation"].Level)
	assert.Equal(t, 3, byName["Data"].Level)
}

func TestAnalyzeComponentsGroupByNamespace(t *testing.T) {
	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			classSym("OrderService", "Acme.Services.OrderService", "Acme.Services"),
			classSym("InvoiceService", "Acme.Services.InvoiceService", "Acme.Services"),
			classSym("Lonely", "Acme.Only.Lonely", "Acme.Only"),
		},
	}
	analysis, _, err := Analyze(context.Background(), code, &model.DependencyAnalysis{}, config.DefaultArchitectureOptions(), nil)
	require.NoError(t, err)

	var serviceComponent *model.Component
	for i, c := range analysis.Components {
		if c.Name == "Acme.Services" {
			serviceComponent = &analysis.Components[i]
		}
		assert.NotEqual(t, "Acme.Only", c.Name) // singleton namespace is skipped
	}
	require.NotNil(t, serviceComponent)
	assert.Equal(t, model.ComponentBusinessLogic, serviceComponent.Type)
	assert.Len(t, serviceComponent.ClassFQNs, 2)
}

func TestAnalyzeCrossCuttingComponents(t *testing.T) {
	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			classSym("AuditLogger", "Acme.AuditLogger", "Acme"),
			classSym("RuleValidator", "Acme.RuleValidator", "Acme"),
		},
	}
	analysis, _, err := Analyze(context.Background(), code, &model.DependencyAnalysis{}, config.DefaultArchitectureOptions(), nil)
	require.NoError(t, err)

	var names []string
	for _, c := range analysis.Components {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Logging")
	assert.Contains(t, names, "Validation")
}

func TestAnalyzeGodClassViolation(t *testing.T) {
	var symbols []model.Symbol
	for i := 0; i < 25; i++ {
		symbols = append(symbols, classSym(
			"Thing", "Acme.Services.Thing"+string(rune('A'+i)), "Acme.Services"))
	}
	code := &model.CodeAnalysis{Symbols: symbols}
	analysis, _, err := Analyze(context.Background(), code, &model.DependencyAnalysis{}, config.DefaultArchitectureOptions(), nil)
	require.NoError(t, err)

	var found bool
	for _, v := range analysis.Violations {
		if v.Kind == model.ViolationGodClass {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyzeLayerViolation(t *testing.T) {
	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			classSym("OrderController", "Acme.OrderController", "Acme"),
			classSym("OrderRepository", "Acme.OrderRepository", "Acme"),
		},
	}
	deps := &model.DependencyAnalysis{
		StaticEdges: []model.Dependency{
			{Kind: model.DepMethodCall, OriginID: "Acme.OrderController", TargetID: "Acme.OrderRepository"},
		},
	}
	analysis, _, err := Analyze(context.Background(), code, deps, config.DefaultArchitectureOptions(), nil)
	require.NoError(t, err)

	var found bool
	for _, v := range analysis.Violations {
		if v.Kind == model.ViolationLayer {
			found = true
			assert.Equal(t, "Acme.OrderRepository", v.Location, "violation should cite the Data-layer callee, not the Presentation-layer caller")
		}
	}
	assert.True(t, found)
}

func TestAnalyzeModulesFallBackToMainWithoutNamespaceIndex(t *testing.T) {
	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			classSym("OrderService", "Acme.Services.OrderService", "Acme.Services"),
			classSym("InvoiceService", "Acme.Services.InvoiceService", "Acme.Services"),
		},
	}
	analysis, _, err := Analyze(context.Background(), code, &model.DependencyAnalysis{}, config.DefaultArchitectureOptions(), nil)
	require.NoError(t, err)
	require.Len(t, analysis.Modules, 1)
	assert.Equal(t, "Main", analysis.Modules[0].Name)
}

func TestAnalyzeRejectsNilInputs(t *testing.T) {
	_, _, err := Analyze(context.Background(), nil, nil, config.DefaultArchitectureOptions(), nil)
	assert.Error(t, err)
}

func TestComputeCohesionIgnoresSingleMethodClasses(t *testing.T) {
	symbols := []model.Symbol{
		classSym("Widget", "Acme.Widget", "Acme"),
		methodSym("Spin", "Acme.Widget.Spin", model.VisibilityPublic),
	}
	classes := classSymbols(symbols)
	assert.Equal(t, 0.0, computeCohesion(classes, symbols))
}

func TestComputeCouplingInstability(t *testing.T) {
	edges := []model.Dependency{
		{OriginID: "A", TargetID: "B"},
		{OriginID: "A", TargetID: "C"},
	}
	stats := computeCoupling(nil, edges)
	assert.Greater(t, stats.MeanEfferent, 0.0)
	assert.GreaterOrEqual(t, stats.Instability, 0.0)
	assert.LessOrEqual(t, stats.Instability, 1.0)
}
