package cli

import (
	"fmt"
	"io"

	"github.com/rcliao/paramlist/internal/model"
	"github.com/rcliao/paramlist/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	paramCmd := &cobra.Command{
		Use:   "param",
		Short: "Edit the parameters of a list",
		Long: `Edit the parameters of a list.

A parameter is selected by id (-k, first match in list order) or by
position (-i). Edits that find nothing to act on are reported with
"ok": false and leave the list unchanged.`,
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a parameter",
		Run:   runParamAdd,
	}
	addCmd.Flags().StringP("type", "t", "", "Type key (see 'paramlist types')")
	addCmd.Flags().String("value", "", "Initial value, e.g. 5555 or 1,2,3")
	addCmd.Flags().String("object", "", "Object id for object-typed parameters")
	addCmd.Flags().StringP("comment", "c", "", "Parameter comment")
	addCmd.MarkFlagRequired("type")

	rmCmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a parameter",
		Run:   runParamRm,
	}

	findCmd := &cobra.Command{
		Use:   "find",
		Short: "Look up a parameter",
		Run:   runParamFind,
	}

	moveCmd := &cobra.Command{
		Use:       "move <up|down>",
		Short:     "Swap a parameter with its neighbour",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		Run:       runParamMove,
	}

	setCmd := &cobra.Command{
		Use:   "set [value]",
		Short: "Set a parameter's value",
		Long:  "Set a parameter's value. Vector-like values take comma-separated components. Object-typed parameters take --object.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runParamSet,
	}
	setCmd.Flags().String("object", "", "Object id for object-typed parameters")
	setCmd.Flags().Bool("clear", false, "Clear the object reference")

	typeCmd := &cobra.Command{
		Use:   "type <type-key>",
		Short: "Change a parameter's type",
		Long:  "Change a parameter's type. Switching to a non-object type drops any object reference.",
		Args:  cobra.ExactArgs(1),
		Run:   runParamType,
	}

	commentCmd := &cobra.Command{
		Use:   "comment <text>",
		Short: "Set a parameter's comment",
		Args:  cobra.ExactArgs(1),
		Run:   runParamComment,
	}

	renameCmd := &cobra.Command{
		Use:   "rename <new-id>",
		Short: "Change a parameter's id",
		Args:  cobra.ExactArgs(1),
		Run:   runParamRename,
	}

	for _, c := range []*cobra.Command{addCmd, rmCmd, findCmd, moveCmd, setCmd, typeCmd, commentCmd, renameCmd} {
		c.Flags().StringP("list", "l", "", "List name (required)")
		c.Flags().StringP("id", "k", "", "Parameter id")
		c.MarkFlagRequired("list")
		if c != addCmd {
			c.Flags().IntP("index", "i", -1, "Parameter position (overrides --id)")
		}
		paramCmd.AddCommand(c)
	}
	addCmd.MarkFlagRequired("id")

	RootCmd.AddCommand(paramCmd)
}

func runParamAdd(cmd *cobra.Command, args []string) {
	list, _ := cmd.Flags().GetString("list")
	id, _ := cmd.Flags().GetString("id")
	typeKey, _ := cmd.Flags().GetString("type")
	value, _ := cmd.Flags().GetString("value")
	objectID, _ := cmd.Flags().GetString("object")
	comment, _ := cmd.Flags().GetString("comment")
	hasValue := cmd.Flags().Changed("value")

	if !model.ValidTypeKey(typeKey) {
		exitErr("add parameter", fmt.Errorf("%w: %q", model.ErrInvalidTypeKey, typeKey))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	obj := lookupObject(cmd, s, objectID)

	var added *model.Parameter
	rec, err := s.Edit(cmd.Context(), list, "add parameter", func(l *model.List) error {
		p := l.AddParameter()
		p.SetID(id)
		p.SetTypeKey(typeKey)
		p.SetComment(comment)
		added = p
		return assignValue(p, value, hasValue, obj)
	})
	if err != nil {
		exitErr("add parameter", err)
	}

	pv := newParamView(rec.List, added)
	printResult(cmd.OutOrStdout(), result{OK: true, Parameter: &pv})
}

func runParamRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	editParam(cmd, s, "delete parameter", func(l *model.List, p *model.Parameter) error {
		return l.DeleteParameter(p)
	})
}

func runParamFind(cmd *cobra.Command, args []string) {
	list, _ := cmd.Flags().GetString("list")
	id, _ := cmd.Flags().GetString("id")
	index, _ := cmd.Flags().GetInt("index")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.GetList(cmd.Context(), list)
	if err != nil {
		exitErr("get list", err)
	}

	p, err := pickParameter(rec.List, id, index)
	if err != nil {
		printResult(cmd.OutOrStdout(), result{Warning: err.Error()})
		return
	}
	pv := newParamView(rec.List, p)
	printResult(cmd.OutOrStdout(), result{OK: true, Parameter: &pv})
}

func runParamMove(cmd *cobra.Command, args []string) {
	var move func(l *model.List, p *model.Parameter) error
	switch args[0] {
	case "up":
		move = func(l *model.List, p *model.Parameter) error { return l.MoveUp(p) }
	case "down":
		move = func(l *model.List, p *model.Parameter) error { return l.MoveDown(p) }
	default:
		exitErr("move parameter", fmt.Errorf("direction must be up or down, got %q", args[0]))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	editParam(cmd, s, "move parameter", move)
}

func runParamSet(cmd *cobra.Command, args []string) {
	objectID, _ := cmd.Flags().GetString("object")
	clearObj, _ := cmd.Flags().GetBool("clear")
	if len(args) == 0 && objectID == "" && !clearObj {
		exitErr("set value", fmt.Errorf("give a value, --object or --clear"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	obj := lookupObject(cmd, s, objectID)

	editParam(cmd, s, "set value", func(l *model.List, p *model.Parameter) error {
		if clearObj {
			return p.SetObjectValue(nil)
		}
		text := ""
		if len(args) > 0 {
			text = args[0]
		}
		return assignValue(p, text, len(args) > 0, obj)
	})
}

func runParamType(cmd *cobra.Command, args []string) {
	typeKey := args[0]
	if !model.ValidTypeKey(typeKey) {
		exitErr("set type", fmt.Errorf("%w: %q", model.ErrInvalidTypeKey, typeKey))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	editParam(cmd, s, "set type", func(l *model.List, p *model.Parameter) error {
		p.SetTypeKey(typeKey)
		return nil
	})
}

func runParamComment(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	editParam(cmd, s, "set comment", func(l *model.List, p *model.Parameter) error {
		p.SetComment(args[0])
		return nil
	})
}

func runParamRename(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	editParam(cmd, s, "rename parameter", func(l *model.List, p *model.Parameter) error {
		p.SetID(args[0])
		return nil
	})
}

// editParam applies fn to the selected parameter in one Edit and prints the
// parameter as saved.
func editParam(cmd *cobra.Command, s *store.SQLiteStore, action string, fn func(l *model.List, p *model.Parameter) error) {
	list, _ := cmd.Flags().GetString("list")
	id, _ := cmd.Flags().GetString("id")
	index, _ := cmd.Flags().GetInt("index")

	var target *model.Parameter
	rec, err := s.Edit(cmd.Context(), list, action, func(l *model.List) error {
		p, err := pickParameter(l, id, index)
		if err != nil {
			return err
		}
		target = p
		return fn(l, p)
	})
	if isSoft(err) {
		logger.Warn(action+" skipped", "list", list, "err", err)
		printResult(cmd.OutOrStdout(), result{Warning: err.Error()})
		return
	}
	if err != nil {
		exitErr(action, err)
	}

	res := result{OK: true}
	if rec.List.Index(target) >= 0 {
		pv := newParamView(rec.List, target)
		res.Parameter = &pv
	}
	printResult(cmd.OutOrStdout(), res)
}

// assignValue sets obj on object-typed parameters, otherwise parses text
// for the parameter's type. Nothing is set when neither is given.
func assignValue(p *model.Parameter, text string, hasText bool, obj *model.Object) error {
	if obj != nil {
		return p.SetValue(obj)
	}
	if !hasText {
		return nil
	}
	v, err := model.ParseValue(p.MajorType(), text)
	if err != nil {
		return fmt.Errorf("parse %s value %q: %w", p.TypeKey(), text, err)
	}
	return p.SetValue(v)
}

func lookupObject(cmd *cobra.Command, s *store.SQLiteStore, id string) *model.Object {
	if id == "" {
		return nil
	}
	obj, err := s.GetObject(cmd.Context(), id)
	if err != nil {
		exitErr("get object", err)
	}
	return obj
}

func printResult(w io.Writer, res result) {
	printOut(w, res, func(w io.Writer) {
		if !res.OK {
			fmt.Fprintf(w, "warning: %s\n", res.Warning)
			return
		}
		if res.Parameter != nil {
			writeParamsText(w, []paramView{*res.Parameter})
		} else {
			fmt.Fprintln(w, "ok")
		}
	})
}
