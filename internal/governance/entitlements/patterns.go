package entitlements

import "regexp"

// rule is one scanner pattern, modeled on the teacher's
// internal/security.Pattern (name + compiled regex + category) but
// narrowed to the entitlement scanner's call-site/import-site semantics
// instead of sensitive-value detection.
type rule struct {
	category   Category
	identifier string
	pattern    *regexp.Regexp
}

// callSiteRules require a trailing "(" so a bare identifier mentioned in
// prose or a string literal without call syntax is never reported
// (§4.3: "Strings inside source that do not form a call site... are not
// matches").
var callSiteRules = []rule{
	// filesystem
	{CategoryFilesystem, "readFile", regexp.MustCompile(`\breadFile\w*\s*\(`)},
	{CategoryFilesystem, "writeFile", regexp.MustCompile(`\bwriteFile\w*\s*\(`)},

	// network
	{CategoryNetwork, "fetch", regexp.MustCompile(`(?:^|[^.\w])fetch\s*\(`)},
	{CategoryNetwork, "globalThis.fetch", regexp.MustCompile(`\bglobalThis\.fetch\s*\(`)},
	{CategoryNetwork, "XMLHttpRequest", regexp.MustCompile(`\bXMLHttpRequest\s*\(`)},

	// subprocess
	{CategorySubprocess, "exec", regexp.MustCompile(`(?:^|[^.\w])exec\s*\(`)},
	{CategorySubprocess, "spawn", regexp.MustCompile(`(?:^|[^.\w])spawn\s*\(`)},

	// crypto
	{CategoryCrypto, "createSign", regexp.MustCompile(`\bcreateSign\s*\(`)},
	{CategoryCrypto, "createHash", regexp.MustCompile(`\bcreateHash\s*\(`)},

	// codeEvaluation
	{CategoryCodeEvaluation, "eval", regexp.MustCompile(`(?:^|[^.\w])eval\s*\(`)},
	{CategoryCodeEvaluation, "eval", regexp.MustCompile(`\(\s*0\s*,\s*eval\s*\)\s*\(`)},
	{CategoryCodeEvaluation, "globalThis.eval", regexp.MustCompile(`\bglobalThis\.eval\s*\(`)},
	{CategoryCodeEvaluation, "Function", regexp.MustCompile(`\bnew\s+Function\s*\(`)},
	{CategoryCodeEvaluation, "Reflect.construct(Function)", regexp.MustCompile(`\bReflect\.construct\s*\(\s*Function\s*,`)},
	{CategoryCodeEvaluation, "vm.runInNewContext", regexp.MustCompile(`\bvm\.runInNewContext\s*\(`)},
	{CategoryCodeEvaluation, "vm.runInThisContext", regexp.MustCompile(`\bvm\.runInThisContext\s*\(`)},
	{CategoryCodeEvaluation, "vm.Script", regexp.MustCompile(`\bnew\s+vm\.Script\s*\(`)},
	{CategoryCodeEvaluation, "process.binding", regexp.MustCompile(`\bprocess\.binding\s*\(`)},
	{CategoryCodeEvaluation, "process.dlopen", regexp.MustCompile(`\bprocess\.dlopen\s*\(`)},
}

// importRules match a quoted, literal module specifier inside a
// require(...) call or an ES import statement; an import site with a
// computed argument is not matched here (computed-import evasion is
// handled separately in evasion.go).
var importRules = []rule{
	{CategoryFilesystem, "fs", regexp.MustCompile(`(?:require\(\s*['"](?:node:)?fs['"]\s*\)|from\s+['"](?:node:)?fs['"]|import\s+['"](?:node:)?fs['"])`)},
	{CategorySubprocess, "child_process", regexp.MustCompile(`(?:require\(\s*['"](?:node:)?child_process['"]\s*\)|from\s+['"](?:node:)?child_process['"]|import\s*\(\s*['"](?:node:)?child_process['"]\s*\)|import\s+['"](?:node:)?child_process['"])`)},
	{CategoryCrypto, "crypto", regexp.MustCompile(`(?:require\(\s*['"](?:node:)?crypto['"]\s*\)|from\s+['"](?:node:)?crypto['"]|import\s+['"](?:node:)?crypto['"])`)},
	{CategoryCodeEvaluation, "vm", regexp.MustCompile(`(?:require\(\s*['"](?:node:)?vm['"]\s*\)|from\s+['"](?:node:)?vm['"]|import\s+['"](?:node:)?vm['"])`)},
	{CategoryNetwork, "axios", regexp.MustCompile(`(?:require\(\s*['"]axios['"]\s*\)|from\s+['"]axios['"])`)},
	{CategoryNetwork, "node-fetch", regexp.MustCompile(`(?:require\(\s*['"]node-fetch['"]\s*\)|from\s+['"]node-fetch['"])`)},
	{CategoryNetwork, "undici", regexp.MustCompile(`(?:require\(\s*['"]undici['"]\s*\)|from\s+['"]undici['"])`)},
	{CategoryNetwork, "got", regexp.MustCompile(`(?:require\(\s*['"]got['"]\s*\)|from\s+['"]got['"])`)},
}

var allRules = func() []rule {
	out := make([]rule, 0, len(callSiteRules)+len(importRules))
	out = append(out, callSiteRules...)
	out = append(out, importRules...)
	return out
}()
