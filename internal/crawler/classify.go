package crawler

import "github.com/oxhq/archlens/internal/model"

// extensionClass is the fixed lowercased-extension → classification mapping
// from SPEC_FULL.md §4.1.
var extensionClass = map[string]model.FileClassification{
	// source
	".cs": model.ClassSource, ".vb": model.ClassSource,
	".cpp": model.ClassSource, ".c": model.ClassSource, ".h": model.ClassSource, ".hpp": model.ClassSource,
	".java": model.ClassSource, ".js": model.ClassSource, ".ts": model.ClassSource,
	".py": model.ClassSource, ".sql": model.ClassSource,
	".ps1": model.ClassSource, ".psm1": model.ClassSource,
	".bat": model.ClassSource, ".cmd": model.ClassSource,
	".lsp": model.ClassSource, ".dcl": model.ClassSource,
	".php": model.ClassSource,

	// configuration
	".config": model.ClassConfiguration, ".xml": model.ClassConfiguration,
	".json": model.ClassConfiguration, ".yaml": model.ClassConfiguration, ".yml": model.ClassConfiguration,
	".ini": model.ClassConfiguration, ".properties": model.ClassConfiguration,
	".settings": model.ClassConfiguration, ".resx": model.ClassConfiguration,
	".csproj": model.ClassConfiguration, ".toml": model.ClassConfiguration,

	// documentation
	".md": model.ClassDocumentation, ".txt": model.ClassDocumentation, ".html": model.ClassDocumentation,
	".htm": model.ClassDocumentation, ".rtf": model.ClassDocumentation, ".pdf": model.ClassDocumentation,

	// resource
	".png": model.ClassResource, ".jpg": model.ClassResource, ".jpeg": model.ClassResource,
	".gif": model.ClassResource, ".ico": model.ClassResource, ".svg": model.ClassResource,
	".bmp": model.ClassResource, ".wav": model.ClassResource, ".mp3": model.ClassResource,
	".ttf": model.ClassResource, ".woff": model.ClassResource,

	// binary
	".dll": model.ClassBinary, ".exe": model.ClassBinary, ".so": model.ClassBinary,
	".dylib": model.ClassBinary, ".pdb": model.ClassBinary, ".obj": model.ClassBinary,

	// archive
	".zip": model.ClassArchive, ".tar": model.ClassArchive, ".gz": model.ClassArchive,
	".7z": model.ClassArchive, ".rar": model.ClassArchive,
}

// Classify maps a lowercased extension (including the leading dot) to a
// FileClassification. Classification is a pure function of the lowercased
// extension alone (SPEC_FULL.md §8).
func Classify(lowerExt string) model.FileClassification {
	if c, ok := extensionClass[lowerExt]; ok {
		return c
	}
	return model.ClassUnknown
}
