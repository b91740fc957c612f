package codegen

// Render produces the source text of an embedded.Config literal
// equivalent to cfg. It is pure, deterministic, and total over valid
// models: no filesystem or network access, and no failure paths.
//
// The packed-resources field renders as a reference to the package-level
// variable the source emitter declares with a go:embed directive, so the
// blob is included by the Go toolchain at the host binary's build time
// rather than inlined here.
func Render(cfg *EmbeddedConfig) string {
	interp := structExpr{
		typeName: "embedded.InterpreterConfig",
		fields: []structField{
			{"Profile", profileCase(cfg.Isolated)},
			{"ConfigureLocale", none("bool")},
			{"DevelopmentMode", none("bool")},
			{"FaultHandler", none("bool")},
			{"HashSeed", none("uint64")},
			{"HomeDir", none("string")},
			{"ProgramName", none("string")},
			{"StdioEncoding", optionalString(cfg.StdioEncodingName)},
			{"StdioErrors", optionalString(cfg.StdioEncodingErrors)},
			{"OptimizationLevel", some(optimizationCase(cfg.OptimizeLevel))},
			{"ModuleSearchPaths", searchPathsValue(cfg.SysPaths)},
			{"BytesWarning", some(bytesWarningCase(cfg.BytesWarning))},
			{"SiteImport", some(boolExpr(cfg.SiteImport))},
			{"UserSiteDirectory", some(boolExpr(cfg.UserSiteDirectory))},
			{"UseEnvironment", some(boolExpr(!cfg.IgnoreEnvironment))},
			{"Inspect", some(boolExpr(cfg.Inspect))},
			{"Interactive", some(boolExpr(cfg.Interactive))},
			{"LegacyFSEncoding", some(boolExpr(cfg.LegacyFSEncoding))},
			{"LegacyStdio", some(boolExpr(cfg.LegacyStdio))},
			{"WriteBytecode", some(boolExpr(cfg.WriteBytecode))},
			{"BufferedStdio", some(boolExpr(!cfg.UnbufferedStdio))},
			{"ParserDebug", some(boolExpr(cfg.ParserDebug))},
			{"Quiet", some(boolExpr(cfg.Quiet))},
			{"Verbose", some(boolExpr(cfg.Verbose != 0))},
		},
	}

	top := structExpr{
		typeName: "embedded.Config",
		fields: []structField{
			{"Interpreter", interp},
			{"RawAllocator", some(allocatorCase(cfg.RawAllocator))},
			{"NativeImporter", boolExpr(true)},
			{"FilesystemImporter", boolExpr(cfg.FilesystemImporter)},
			{"PackedResources", some(symbol(packedResourcesIdent))},
			{"ExtraExtensionModules", none("[]string")},
			{"ArgvBytes", boolExpr(false)},
			{"SysFrozen", boolExpr(cfg.SysFrozen)},
			{"SysBundleMarker", boolExpr(cfg.SysBundleMarker)},
			{"TerminfoResolution", terminfoCase(cfg.Terminfo)},
			{"WriteModulesDirectoryEnv", optionalString(cfg.WriteModulesDirectoryEnv)},
			{"Run", runModeCase(cfg.Run)},
		},
	}

	return printExpr(top)
}

func profileCase(isolated bool) expr {
	if isolated {
		return symbol("embedded.ProfileIsolated")
	}
	return symbol("embedded.ProfileStandard")
}

// optimizationCase maps an optimization level to its enum case.
// Out-of-domain values clamp to the highest level rather than fail; the
// renderer is total by contract.
func optimizationCase(level int) expr {
	switch level {
	case 0:
		return symbol("embedded.OptimizationZero")
	case 1:
		return symbol("embedded.OptimizationOne")
	case 2:
		return symbol("embedded.OptimizationTwo")
	default:
		return symbol("embedded.OptimizationTwo")
	}
}

// bytesWarningCase maps a bytes-warning level to its enum case.
// Out-of-domain values clamp to raise.
func bytesWarningCase(level int) expr {
	switch level {
	case 0:
		return symbol("embedded.BytesWarningNone")
	case 1:
		return symbol("embedded.BytesWarningWarn")
	case 2:
		return symbol("embedded.BytesWarningRaise")
	default:
		return symbol("embedded.BytesWarningRaise")
	}
}

// allocatorCase maps the allocator choice to its enum case. Unknown
// values fall back to the system allocator.
func allocatorCase(a RawAllocator) expr {
	switch a {
	case RawAllocatorArena:
		return symbol("embedded.AllocatorArena")
	case RawAllocatorRuntimeDefault:
		return symbol("embedded.AllocatorRuntimeDefault")
	default:
		return symbol("embedded.AllocatorSystem")
	}
}

// terminfoCase renders the terminfo resolution variant. Unknown modes
// fall back to dynamic lookup.
func terminfoCase(t Terminfo) expr {
	switch t.Mode {
	case TerminfoNone:
		return call("embedded.TerminfoNone")
	case TerminfoStatic:
		return call("embedded.TerminfoStatic", quoted(t.Path))
	default:
		return call("embedded.TerminfoDynamic")
	}
}

// runModeCase renders exactly one of the five run mode variants, with
// the payload escaped like any other string.
func runModeCase(m RunMode) expr {
	switch m.Kind() {
	case RunRepl:
		return call("embedded.RunRepl")
	case RunModule:
		return call("embedded.RunModule", quoted(m.Payload()))
	case RunEval:
		return call("embedded.RunEval", quoted(m.Payload()))
	case RunFile:
		return call("embedded.RunFile", quoted(m.Payload()))
	default:
		return call("embedded.RunNone")
	}
}

// optionalString renders a present-or-absent string field. The model and
// the generated literal agree that absent and empty are distinct states.
func optionalString(s *string) expr {
	if s == nil {
		return none("string")
	}
	return some(quoted(*s))
}

// searchPathsValue renders the module search path list. An empty list
// means "unset", so it renders the absent marker rather than an empty
// sequence.
func searchPathsValue(paths []string) expr {
	if len(paths) == 0 {
		return none("[]string")
	}
	elems := make([]expr, len(paths))
	for i, p := range paths {
		elems[i] = quoted(p)
	}
	return some(sequence("string", elems...))
}
