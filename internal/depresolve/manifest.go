package depresolve

import (
	"encoding/xml"
	"regexp"
)

// connectionStringRe extracts the quoted value of a connectionString
// attribute, as it appears in App.config/Web.config-style configuration
// files.
var connectionStringRe = regexp.MustCompile(`connectionString\s*=\s*"([^"]*)"`)

// fromClauseRe extracts the identifier following a SQL FROM clause.
var fromClauseRe = regexp.MustCompile(`(?i)\bFROM\s+\[?([A-Za-z_][A-Za-z0-9_\.]*)\]?`)

var (
	databaseRe       = regexp.MustCompile(`(?i)Database\s*=\s*([^;]+)`)
	initialCatalogRe = regexp.MustCompile(`(?i)Initial Catalog\s*=\s*([^;]+)`)
	dataSourceRe     = regexp.MustCompile(`(?i)Data Source\s*=\s*([^;]+)`)
)

// databaseNameFrom implements spec §4.3 step 4's first-successful-of rule:
// Database=, then Initial Catalog=, then Data Source=.
func databaseNameFrom(connStr string) string {
	for _, re := range []*regexp.Regexp{databaseRe, initialCatalogRe, dataSourceRe} {
		if m := re.FindStringSubmatch(connStr); m != nil {
			return trimSpace(m[1])
		}
	}
	return ""
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

// manifestEntry is one parsed package reference from a project manifest.
type manifestEntry struct {
	PackageName string
	Version     string
}

// csprojManifest matches MSBuild-style <PackageReference Include="X"
// Version="Y"/> elements that sit directly inside an <ItemGroup> of the
// <Project> root.
type csprojManifest struct {
	XMLName xml.Name `xml:"Project"`
	ItemGroups []struct {
		PackageReferences []struct {
			Include string `xml:"Include,attr"`
			Version string `xml:"Version,attr"`
		} `xml:"PackageReference"`
	} `xml:"ItemGroup"`
}

// packagesConfigManifest matches legacy NuGet packages.config's flat
// <package id="X" version="Y"/> list.
type packagesConfigManifest struct {
	XMLName  xml.Name `xml:"packages"`
	Packages []struct {
		ID      string `xml:"id,attr"`
		Version string `xml:"version,attr"`
	} `xml:"package"`
}

// parseManifest tries the two recognized manifest shapes in turn, per
// spec §4.3 step 3. An unrecognized or malformed manifest yields no
// entries and a non-nil error, which callers surface as a diagnostic.
func parseManifest(src []byte) ([]manifestEntry, error) {
	var proj csprojManifest
	if err := xml.Unmarshal(src, &proj); err == nil && len(proj.ItemGroups) > 0 {
		var out []manifestEntry
		for _, g := range proj.ItemGroups {
			for _, p := range g.PackageReferences {
				if p.Include == "" {
					continue
				}
				out = append(out, manifestEntry{PackageName: p.Include, Version: p.Version})
			}
		}
		if len(out) > 0 {
			return out, nil
		}
	}

	var pkgs packagesConfigManifest
	if err := xml.Unmarshal(src, &pkgs); err != nil {
		return nil, err
	}
	var out []manifestEntry
	for _, p := range pkgs.Packages {
		if p.ID == "" {
			continue
		}
		out = append(out, manifestEntry{PackageName: p.ID, Version: p.Version})
	}
	return out, nil
}
