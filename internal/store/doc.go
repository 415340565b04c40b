// Package store manages nginx site configurations on disk.
//
// A site configuration lives in two places:
//
//	<root>/sites-available/<name>   the configuration text
//	<root>/sites-enabled/<name>     a symlink to it while the site is active
//
// DirStore is the filesystem implementation of Store. It keeps no state of
// its own, so every query reflects what is on disk at the time of the call.
// It never creates the two roots; they must already exist.
//
// # Basic Usage
//
//	st := store.New("/etc/nginx")
//
//	name, err := site.ParseName("example.com")
//	if err != nil {
//	    return err
//	}
//	if err := st.Create(name, content); err != nil {
//	    return err
//	}
//	if err := st.Activate(name); err != nil {
//	    return err
//	}
//
// # Names
//
// Every operation takes a site.Name, which can only be obtained through
// site.ParseName. Names that contain a path separator or refer to a parent
// directory are rejected there, so the store cannot be made to touch files
// outside its two roots.
//
// # Errors
//
// Failures are *errors.SiteError values with codes NOT_FOUND,
// ALREADY_EXISTS, ALREADY_ACTIVE, NOT_ACTIVE, INVALID_NAME or IO. The
// store does not print or log.
//
// # Testing
//
// MockStore records calls and lets tests replace any operation:
//
//	mock := store.NewMockStore("/tmp/a", "/tmp/e")
//	mock.ActivateFunc = func(site.Name) error { return errors.AlreadyActive("x") }
package store
