package blueprint

import (
	"fmt"
	"text/template"
	"text/template/parse"
)

// templateRefs parses a template source and returns the variable names it
// references through field access ({{ .project_name }}), deduplicated, in
// first-reference order.
func templateRefs(src string) ([]string, error) {
	t, err := template.New("refs").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	seen := make(map[string]bool)
	var out []string
	walkNode(t.Tree.Root, func(n parse.Node) {
		f, ok := n.(*parse.FieldNode)
		if !ok || len(f.Ident) == 0 {
			return
		}
		name := f.Ident[0]
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	})
	return out, nil
}

func walkNode(n parse.Node, fn func(parse.Node)) {
	if n == nil {
		return
	}
	fn(n)
	switch v := n.(type) {
	case *parse.ListNode:
		if v == nil {
			return
		}
		for _, c := range v.Nodes {
			walkNode(c, fn)
		}
	case *parse.ActionNode:
		walkPipe(v.Pipe, fn)
	case *parse.IfNode:
		walkBranch(&v.BranchNode, fn)
	case *parse.RangeNode:
		walkBranch(&v.BranchNode, fn)
	case *parse.WithNode:
		walkBranch(&v.BranchNode, fn)
	case *parse.TemplateNode:
		walkPipe(v.Pipe, fn)
	case *parse.PipeNode:
		walkPipe(v, fn)
	case *parse.ChainNode:
		walkNode(v.Node, fn)
	}
}

func walkBranch(b *parse.BranchNode, fn func(parse.Node)) {
	walkPipe(b.Pipe, fn)
	if b.List != nil {
		walkNode(b.List, fn)
	}
	if b.ElseList != nil {
		walkNode(b.ElseList, fn)
	}
}

func walkPipe(p *parse.PipeNode, fn func(parse.Node)) {
	if p == nil {
		return
	}
	for _, cmd := range p.Cmds {
		for _, arg := range cmd.Args {
			walkNode(arg, fn)
		}
	}
}
