// Package zeinfo decodes the .ze_info metadata of a zebin into kernel
// descriptors.
//
// The document is parsed with package yaml and walked group by group:
// global sections first, then every kernel in order, then kernels_misc_info.
// Inside a group every member is read and all read failures are reported
// together. Groups that depend on earlier ones (payload arguments on inline
// samplers, binding tables on argument kinds) are decoded after them.
//
// Unknown keys are warnings unless Config.TolerateUnknown is false. Errors are
// *errors.Error values; errors.OutcomeOf tells an unsupported schema version
// apart from a malformed document.
//
//	var w errors.Warnings
//	prog, err := zeinfo.Decode(text, zeinfo.DefaultConfig(), &w)
//	if err != nil {
//	    return errors.OutcomeOf(err), err
//	}
package zeinfo
