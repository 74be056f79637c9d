// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive dependencies through constructor injection and depend on
// repository interfaces rather than concrete infrastructure, so the quiz
// orchestration can be tested against in-memory stores.
package service
