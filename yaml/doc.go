// Package yaml reads zeinfo, the restricted YAML-like notation embedded in
// zebin containers. It is not a general YAML parser.
//
// Text is tokenized in one pass into tokens and logical lines, then folded by
// indentation into a node arena. Nodes refer to each other and to tokens by
// integer id only:
//
//	p, err := yaml.Parse(text, &warnings)
//	kernels, ok := p.Child(p.Root(), "kernels")
//	for k := range p.Children(kernels) {
//		env, _ := p.Child(k, "execution_env")
//		simd, _ := p.Child(env, "simd_size")
//		size, err := yaml.ReadInt[uint8](p, simd)
//		...
//	}
//
// Unsupported constructs such as inline mappings, multi-line scalars and
// anchors are rejected with a syntax error.
package yaml
