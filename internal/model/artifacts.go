package model

// DirectoryNode is one node in the crawled directory tree.
type DirectoryNode struct {
	Path          string           `json:"path"`
	Name          string           `json:"name"`
	Files         []FileRecord     `json:"files"`
	Children      []*DirectoryNode `json:"children,omitempty"`
	TotalFiles    int              `json:"total_files"`
	TotalBytes    int64            `json:"total_bytes"`
}

// FileSystemAnalysis is the full output of the Crawler stage.
type FileSystemAnalysis struct {
	Root            string         `json:"root"`
	Tree            *DirectoryNode `json:"tree"`
	SourceFiles     []FileRecord   `json:"source_files"`
	ConfigFiles     []FileRecord   `json:"config_files"`
	ResourceFiles   []FileRecord   `json:"resource_files"`
	DocFiles        []FileRecord   `json:"doc_files"`
	TypeHistogram   map[string]int `json:"type_histogram"`
}

// AllFiles returns every classified file discovered, in stage-published
// bucket order.
func (a FileSystemAnalysis) AllFiles() []FileRecord {
	out := make([]FileRecord, 0, len(a.SourceFiles)+len(a.ConfigFiles)+len(a.ResourceFiles)+len(a.DocFiles))
	out = append(out, a.SourceFiles...)
	out = append(out, a.ConfigFiles...)
	out = append(out, a.ResourceFiles...)
	out = append(out, a.DocFiles...)
	return out
}

// LanguageResult is the per-language sub-result of symbol extraction.
type LanguageResult struct {
	Language   string   `json:"language"`
	FileCount  int      `json:"file_count"`
	Symbols    []Symbol `json:"symbols"`
	TotalLines int      `json:"total_lines"`
}

// CodeAnalysis is the full output of the SymbolExtractor stage.
type CodeAnalysis struct {
	Symbols         []Symbol                  `json:"symbols"`
	ByLanguage      map[string]*LanguageResult `json:"by_language"`
	ClassCount      int                       `json:"class_count"`
	MethodCount     int                       `json:"method_count"`
	PropertyCount   int                       `json:"property_count"`
	InterfaceCount  int                       `json:"interface_count"`
	LinesOfCode     int                       `json:"lines_of_code"`
	NamespaceIndex  map[string][]string       `json:"namespace_index"` // namespace -> symbol FQNs
	Complexity      float64                   `json:"complexity,omitempty"`
	Maintainability float64                   `json:"maintainability,omitempty"`
	Readability     float64                   `json:"readability,omitempty"`
}

// SymbolByFQN builds a lookup index over every extracted symbol.
func (c *CodeAnalysis) SymbolByFQN() map[string]*Symbol {
	idx := make(map[string]*Symbol, len(c.Symbols))
	for i := range c.Symbols {
		idx[c.Symbols[i].FQN] = &c.Symbols[i]
	}
	return idx
}

// DependencyAnalysis is the full output of the DependencyResolver stage.
type DependencyAnalysis struct {
	StaticEdges  []Dependency          `json:"static_edges"`
	DynamicEdges []Dependency          `json:"dynamic_edges"`
	External     []ExternalDependency  `json:"external"`
	Databases    []DatabaseDependency  `json:"databases"`
	Graph        DependencyGraph       `json:"graph"`
	Cycles       []CircularDependency  `json:"cycles"`
}

// ArchitectureAnalysis is the full output of the ArchitectureAnalyzer stage.
type ArchitectureAnalysis struct {
	DetectedPattern ArchitecturalPattern     `json:"detected_pattern"`
	Layers          []Layer                  `json:"layers"`
	Components      []Component              `json:"components"`
	DesignPatterns  []DesignPatternMatch      `json:"design_patterns"`
	Cohesion        float64                  `json:"cohesion"`
	Coupling        CouplingStats            `json:"coupling"`
	Violations      []ArchitecturalViolation `json:"violations"`
	Modules         []Module                 `json:"modules"`
}

// CouplingStats holds the aggregate afferent/efferent coupling scalars.
type CouplingStats struct {
	MeanAfferent float64 `json:"mean_afferent"`
	MeanEfferent float64 `json:"mean_efferent"`
	Instability  float64 `json:"instability"`
}

// ComponentRelationship is an aggregated edge between two components.
type ComponentRelationship struct {
	Source   string            `json:"source"`
	Target   string            `json:"target"`
	Count    int               `json:"count"`
	Kinds    []RelationshipKind `json:"kinds"`
	Strength float64           `json:"strength"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// LayerRelationship is an aggregated edge between two layers.
type LayerRelationship struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Count       int    `json:"count"`
	Strength    float64 `json:"strength"`
	IsViolation bool   `json:"is_violation"`
}

// DependencyMatrixEntry is one (source,target) entry in the
// dependency-strength matrix.
type DependencyMatrixEntry struct {
	Source      string             `json:"source"`
	Target      string             `json:"target"`
	Count       int                `json:"count"`
	Kinds       []RelationshipKind `json:"kinds"`
	Strength    float64            `json:"strength"`
	MaxStrength float64            `json:"max_strength"`
	AvgStrength float64            `json:"avg_strength"`
}

// DependencyStrengthMatrix is the full dependency-strength matrix plus its
// min/max strength bounds.
type DependencyStrengthMatrix struct {
	Entries     []DependencyMatrixEntry `json:"entries"`
	MinStrength float64                 `json:"min_strength"`
	MaxStrength float64                 `json:"max_strength"`
}

// MappingStatistics is the statistics summary of a RelationshipMapping.
type MappingStatistics struct {
	TotalRelationships        int                      `json:"total_relationships"`
	KindHistogram             map[RelationshipKind]int `json:"kind_histogram"`
	MeanStrength              float64                  `json:"mean_strength"`
	StrongestComponentRelDesc string                   `json:"strongest_component_relationship"`
	LayerRelationshipCount    int                      `json:"layer_relationship_count"`
	LayerViolationCount       int                      `json:"layer_violation_count"`
	MethodCount               int                      `json:"method_count"`
	ClassCount                int                      `json:"class_count"`
	RootMethodCount           int                      `json:"root_method_count"`
	LeafMethodCount           int                      `json:"leaf_method_count"`
	MaxCallDepth              int                      `json:"max_call_depth"`
	MaxInheritanceDepth       int                      `json:"max_inheritance_depth"`
}

// RelationshipMapping is the full output of the RelationshipMapper stage.
type RelationshipMapping struct {
	Matrix               RelationshipMatrix        `json:"matrix"`
	ComponentRelationships []ComponentRelationship  `json:"component_relationships"`
	LayerRelationships     []LayerRelationship      `json:"layer_relationships"`
	DependencyMatrix       DependencyStrengthMatrix `json:"dependency_matrix"`
	CallHierarchy          []CallHierarchyNode      `json:"call_hierarchy"`
	InheritanceTree        []InheritanceNode        `json:"inheritance_tree"`
	Statistics             MappingStatistics        `json:"statistics"`
}
