package installation

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strconv"
)

// UserExists reports whether a system account with the given name exists.
func UserExists(name string) bool {
	_, err := user.Lookup(name)
	return err == nil
}

// GroupExists reports whether a system group with the given name exists.
func GroupExists(name string) bool {
	_, err := user.LookupGroup(name)
	return err == nil
}

// CreateUser creates the platform's system group and account when absent.
// Only root can provision accounts, so anyone else gets an error before
// any command runs.
func CreateUser(name, homeDir, shell string) error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("user %q can only be created when running as root", name)
	}

	if !GroupExists(name) {
		if out, err := exec.Command("groupadd", name).CombinedOutput(); err != nil {
			return fmt.Errorf("groupadd %s: %v: %s", name, err, out)
		}
	}

	if !UserExists(name) {
		out, err := exec.Command(
			"useradd", "-d", homeDir, "-s", shell, "-g", name, name).CombinedOutput()
		if err != nil {
			return fmt.Errorf("useradd %s: %v: %s", name, err, out)
		}
	}
	return nil
}

// Chown recursively hands path to the named account and its primary group.
func Chown(path, owner string) error {
	account, err := user.Lookup(owner)
	if err != nil {
		return fmt.Errorf("lookup user %s: %w", owner, err)
	}
	uid, err := strconv.Atoi(account.Uid)
	if err != nil {
		return fmt.Errorf("parse uid for %s: %w", owner, err)
	}
	gid, err := strconv.Atoi(account.Gid)
	if err != nil {
		return fmt.Errorf("parse gid for %s: %w", owner, err)
	}

	return filepath.WalkDir(path, func(p string, _ fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		return os.Chown(p, uid, gid)
	})
}
