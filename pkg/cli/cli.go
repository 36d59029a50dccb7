package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type CommandPlugin interface {
	Meta() *cobra.Command
	Execute(ctx context.Context, cmd *cobra.Command, args []string) error
}

type CLI struct {
	ctx     context.Context
	rootCmd *cobra.Command
	plugins []CommandPlugin
	inits   []func(cmd *cobra.Command) error
}

func NewCLI(ctx context.Context, use, short string) *CLI {
	c := &CLI{
		ctx: ctx,
		rootCmd: &cobra.Command{
			Use:           use,
			Short:         short,
			SilenceUsage:  true,
			SilenceErrors: true,
		},
		plugins: make([]CommandPlugin, 0, 10),
	}

	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		for _, hook := range c.inits {
			if err := hook(cmd); err != nil {
				return err
			}
		}
		return nil
	}
	return c
}

// Root возвращает корневую команду, например чтобы перенаправить вывод в тестах
func (c *CLI) Root() *cobra.Command {
	return c.rootCmd
}

// PersistentFlags - флаги, общие для всех команд (--config и т.п.)
func (c *CLI) PersistentFlags() *pflag.FlagSet {
	return c.rootCmd.PersistentFlags()
}

// OnInitialize добавляет хук, который выполняется перед любой командой плагина
func (c *CLI) OnInitialize(fn func(cmd *cobra.Command) error) {
	c.inits = append(c.inits, fn)
}

func (c *CLI) RegisterPlugin(p CommandPlugin) {
	c.plugins = append(c.plugins, p)
	cmd := p.Meta()
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		for _, plugin := range c.plugins {
			if plugin.Meta() == cmd {
				return plugin.Execute(cmd.Context(), cmd, args)
			}
		}
		return fmt.Errorf("unknown command %q", cmd.Name())
	}
	c.rootCmd.AddCommand(cmd)
}

// Plugins возвращает имена зарегистрированных команд
func (c *CLI) Plugins() []string {
	names := make([]string, 0, len(c.plugins))
	for _, plugin := range c.plugins {
		names = append(names, plugin.Meta().Name())
	}
	return names
}

func (c *CLI) initCompletion() {
	c.rootCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string,
	) ([]string, cobra.ShellCompDirective) {
		return c.Plugins(), cobra.ShellCompDirectiveNoFileComp
	}

	completionCmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate completion script",
		Long:      "Generate completion script for bash, zsh, fish, powershell",
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) > 0 {
				shell = args[0]
			}
			switch shell {
			case "bash":
				return c.rootCmd.GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return c.rootCmd.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return c.rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return c.rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported shell: %s", shell)
			}
		},
	}
	// source <(zetalan completion zsh)
	c.rootCmd.AddCommand(completionCmd)
}

// Run разбирает args (без имени программы) и выполняет выбранную команду
func (c *CLI) Run(args []string) error {
	c.initCompletion()
	c.rootCmd.SetArgs(args)
	return c.rootCmd.ExecuteContext(c.ctx)
}
