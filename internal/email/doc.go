// Package email composes and delivers the platform's transactional email.
//
// Messages are rendered from embedded html/template files in the recipient's
// language, with subjects and fixed strings taken from the i18n catalogs.
// Delivery goes through Postmark when a server token is configured and into a
// local outbox directory otherwise.
package email
