// Package annotate synthesizes "Decorator Usage" doc comments for decorated
// class and field declarations.
//
// The package works on lines, not on a syntax tree. Each line is classified
// by a Classifier, decorators are collected until a declaration is reached,
// and a guarded comment block is emitted in front of the decorators:
//
//	//LOCK
//	/**
//	 * Decorator Usage:
//	 * ```
//	 * @Injectable()
//	 * ```
//	 */
//	//UNLOCK
//	@Injectable()
//	class Foo {
//
// Lines between the guard markers are never classified, so running the
// transform over its own output leaves the file unchanged. Every rewrite is
// checked by the safety package before it is returned.
package annotate
