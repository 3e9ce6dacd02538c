package menu

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"menubot/internal/domain"

	"gopkg.in/yaml.v3"
)

// Tree is an authored menu tree for one robot
type Tree struct {
	RobotID int64      `yaml:"robot_id"`
	Menus   []TreeNode `yaml:"menus"`
}

// TreeNode is one authored menu; a department makes it an attendance menu
type TreeNode struct {
	Code         string     `yaml:"code"`
	Title        string     `yaml:"title"`
	DepartmentID *int64     `yaml:"department_id,omitempty"`
	Children     []TreeNode `yaml:"children,omitempty"`
}

// LoadTreeFile reads a YAML menu tree, rejecting unknown keys
func LoadTreeFile(path string) (Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tree{}, err
	}
	defer f.Close()

	var tree Tree
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&tree); err != nil {
		return Tree{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return tree, nil
}

// Validate checks every level of the tree and reports all problems at once
func (t Tree) Validate() error {
	var errs []error
	if t.RobotID <= 0 {
		errs = append(errs, fmt.Errorf("robot_id must be positive"))
	}
	if len(t.Menus) == 0 {
		errs = append(errs, fmt.Errorf("tree has no root menus"))
	}
	errs = append(errs, validateLevel(t.Menus, nil)...)
	return errors.Join(errs...)
}

func validateLevel(nodes []TreeNode, path []string) []error {
	var errs []error
	where := "root"
	if len(path) > 0 {
		where = strings.Join(path, " > ")
	}

	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if !IsSelection(n.Code) {
			errs = append(errs, fmt.Errorf("%w: %q under %s", domain.ErrInvalidOrderCode, n.Code, where))
		} else if seen[n.Code] {
			errs = append(errs, fmt.Errorf("%w: %q under %s", domain.ErrDuplicateOrderCode, n.Code, where))
		}
		seen[n.Code] = true

		if strings.TrimSpace(n.Title) == "" {
			errs = append(errs, fmt.Errorf("menu %q under %s has no title", n.Code, where))
		}
		if n.DepartmentID != nil && len(n.Children) > 0 {
			errs = append(errs, fmt.Errorf("attendance menu %q under %s cannot have children", n.Title, where))
		}

		errs = append(errs, validateLevel(n.Children, append(path, n.Title))...)
	}
	return errs
}

// Count returns the number of menus in the tree
func (t Tree) Count() int {
	return countNodes(t.Menus)
}

func countNodes(nodes []TreeNode) int {
	n := len(nodes)
	for _, c := range nodes {
		n += countNodes(c.Children)
	}
	return n
}
