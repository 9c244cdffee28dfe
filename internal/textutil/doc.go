// Package textutil holds string helpers shared across packages.
package textutil
